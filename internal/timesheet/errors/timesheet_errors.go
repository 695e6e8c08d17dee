package timesheeterrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrDailyReportRequired = apperror.New(
		apperror.CodeInvalidInput,
		"daily report is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"no timesheet submitted for this date",
		http.StatusNotFound,
	)
	ErrSubmitFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"Error saving timesheet. Please try again.",
		http.StatusServiceUnavailable,
	)
)
