package attendanceerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrOfficeConfirmationRequired = apperror.New(
		apperror.CodeConfirmationRequired,
		"Your work-from-home choice does not match today's approval. Confirm to sign in from the office.",
		http.StatusConflict,
	)
	ErrOutsideOfficeSignIn = apperror.New(
		apperror.CodeOutsideGeofence,
		"Sign-in denied: outside any office location",
		http.StatusForbidden,
	)
	ErrOutsideOfficeSignOut = apperror.New(
		apperror.CodeOutsideGeofence,
		"Sign-out denied: outside any office location",
		http.StatusForbidden,
	)
	ErrAlreadySignedIn = apperror.New(
		apperror.CodeInvalidState,
		"You have already signed in today!",
		http.StatusConflict,
	)
	ErrNotSignedIn = apperror.New(
		apperror.CodeInvalidState,
		"You have not signed in today!",
		http.StatusConflict,
	)
	ErrAlreadySignedOut = apperror.New(
		apperror.CodeInvalidState,
		"You have already signed out today!",
		http.StatusConflict,
	)
	ErrTimesheetRequired = apperror.New(
		apperror.CodeTimesheetRequired,
		"You must submit your daily timesheet before signing out.",
		http.StatusPreconditionFailed,
	).WithDetails(map[string]any{"timesheet_required": true})
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be incomplete_sessions or completed_sessions",
		http.StatusBadRequest,
	)
	ErrLookupFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"could not verify today's attendance, please try again",
		http.StatusServiceUnavailable,
	)
	ErrPersistFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"Error recording attendance. Please try again.",
		http.StatusServiceUnavailable,
	)
)
