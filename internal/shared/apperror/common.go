package apperror

import "net/http"

// Shared sentinels for middleware; feature packages keep their own in <feature>/errors.
var (
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "Access denied for this principal", http.StatusForbidden)
	ErrInternal     = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)

	ErrRateLimitedIP        = New(CodeRateLimited, "Too many requests from this IP", http.StatusTooManyRequests)
	ErrRateLimitedPrincipal = New(CodeRateLimited, "Too many requests from this user", http.StatusTooManyRequests)
)
