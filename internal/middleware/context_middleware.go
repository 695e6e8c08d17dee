package middleware

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

// ContextLogger attaches a request scoped logger. AuthMiddleware later
// enriches it with the principal.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = c.GetHeader(HeaderRequestID)
		}
		if rid == "" {
			rid = uuid.New().String()
			c.Header(HeaderRequestID, rid)
		}

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// withPrincipalContext stores the principal on the request context so
// services and the audit logger can read it without gin.
func withPrincipalContext(c *gin.Context, principal domain.Principal) {
	ctx := c.Request.Context()
	ctx = contextutil.WithPrincipal(ctx, principal.ID, string(principal.Kind))
	ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(
		zap.String("principal_id", principal.ID),
		zap.String("principal_kind", string(principal.Kind)),
	))
	c.Request = c.Request.WithContext(ctx)
}
