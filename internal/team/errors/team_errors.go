package teamerrors

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
	ErrInvalidTeam = apperror.New(
		apperror.CodeInvalidInput,
		"team must be A or B",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEffectiveFromInPast = apperror.New(
		apperror.CodeInvalidInput,
		"effective_from must be today or later",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrSameTeam = apperror.New(
		apperror.CodeInvalidState,
		"employee is already on this team",
		http.StatusConflict,
	)
	ErrNotAfterLastChange = apperror.New(
		apperror.CodeInvalidState,
		"effective_from must be after the employee's last team change",
		http.StatusConflict,
	)
)
