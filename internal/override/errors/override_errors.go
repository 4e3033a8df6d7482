package overrideerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidOverrideID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid override id",
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
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidShift = apperror.New(
		apperror.CodeInvalidInput,
		"shift must be one of MORNING, EVENING, COVER_X_AM, COVER_X_PM, NONE",
		http.StatusBadRequest,
	)
	ErrCoverBoutiqueRequired = apperror.New(
		apperror.CodeInvalidInput,
		"cover shifts require the boutique being covered",
		http.StatusBadRequest,
	)
	ErrCoverBoutiqueNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"cover boutique is only valid with a COVER_* shift",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrOverrideNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift override not found",
		http.StatusNotFound,
	)
	ErrOverrideAlreadyRetired = apperror.New(
		apperror.CodeInvalidState,
		"shift override is already retired",
		http.StatusConflict,
	)
)
