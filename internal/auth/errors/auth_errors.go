package autherrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrNotAuthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"not authenticated",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token expired",
		http.StatusUnauthorized,
	)
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to access this resource",
		http.StatusForbidden,
	)
	ErrEmployeeNotRegistered = apperror.New(
		apperror.CodeNotFound,
		"no active employee is registered for this account",
		http.StatusNotFound,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeForbidden,
		"employee account is deactivated",
		http.StatusForbidden,
	)
	ErrAdminNotRegistered = apperror.New(
		apperror.CodeNotFound,
		"no admin is registered for this account",
		http.StatusNotFound,
	)
	ErrOutsideOffice = apperror.New(
		apperror.CodeOutsideGeofence,
		"access denied: you are not within any office location",
		http.StatusForbidden,
	)
	ErrInvalidUserType = apperror.New(
		apperror.CodeInvalidInput,
		"user_type must be employee or admin",
		http.StatusBadRequest,
	)
	ErrEmailMissing = apperror.New(
		apperror.CodeInvalidInput,
		"no email on the verified identity",
		http.StatusBadRequest,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to issue session token",
		http.StatusInternalServerError,
	)
)
