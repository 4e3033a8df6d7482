package coveragerulerrors

import (
	"net/http"

	"go-roster/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidBoutiqueID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid boutique id",
		http.StatusBadRequest,
	)
	ErrInvalidDayOfWeek = apperror.New(
		apperror.CodeInvalidInput,
		"day of week must be between 0 (Sunday) and 6 (Saturday)",
		http.StatusBadRequest,
	)
	ErrNegativeMinimum = apperror.New(
		apperror.CodeInvalidInput,
		"minimum headcounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"coverage rule not found",
		http.StatusNotFound,
	)
)
