package rostererrors

import (
	"net/http"

	"go-roster/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidBoutiqueID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid boutique id",
		http.StatusBadRequest,
	)
	ErrBoutiqueNotInScope = apperror.New(
		apperror.CodeForbidden,
		"boutique is outside the caller's scope",
		http.StatusForbidden,
	)
	ErrEmptyScope = apperror.New(
		apperror.CodeForbidden,
		"caller has no boutiques in scope",
		http.StatusForbidden,
	)
)
