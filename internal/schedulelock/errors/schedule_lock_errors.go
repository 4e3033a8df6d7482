package schedulelockerrors

import (
	"net/http"

	"go-roster/internal/shared/apperror"
)

// Lock-gate error codes are part of the API contract: surrounding modules
// match on WEEK_LOCKED / DAY_LOCKED / WEEK_NOT_APPROVED literally.
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
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrWeekNotApproved = apperror.New(
		"WEEK_NOT_APPROVED",
		"week must be approved before it can be locked",
		http.StatusConflict,
	)
	ErrWeekLocked = apperror.New(
		"WEEK_LOCKED",
		"the week containing this date is locked",
		http.StatusConflict,
	)
	ErrDayLocked = apperror.New(
		"DAY_LOCKED",
		"this day is locked",
		http.StatusConflict,
	)
	ErrWeekLockedForUnapprove = apperror.New(
		"WEEK_LOCKED",
		"unlock the week before moving it back to draft",
		http.StatusConflict,
	)
)
