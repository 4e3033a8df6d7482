package boutiqueerrors

import (
	"net/http"

	"go-roster/internal/shared/apperror"
)

var (
	ErrBoutiqueNotFound = apperror.New(
		apperror.CodeNotFound,
		"Boutique not found",
		http.StatusNotFound,
	)

	ErrBoutiqueCodeTaken = apperror.New(
		apperror.CodeConflict,
		"Boutique code already exists for this company",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidBoutiqueID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid boutique ID",
		http.StatusBadRequest,
	)
)
