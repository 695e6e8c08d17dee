package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// private key type so values never collide with other packages
type contextKey string

const (
	requestIDKey     contextKey = "request_id"
	principalIDKey   contextKey = "principal_id"
	principalKindKey contextKey = "principal_kind"
	loggerKey        contextKey = "logger"
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithPrincipal stores the authenticated caller. kind is "employee" or "admin".
func WithPrincipal(ctx context.Context, id, kind string) context.Context {
	ctx = context.WithValue(ctx, principalIDKey, id)
	return context.WithValue(ctx, principalKindKey, kind)
}

func GetPrincipalID(ctx context.Context) string {
	if id, ok := ctx.Value(principalIDKey).(string); ok {
		return id
	}
	return ""
}

func GetPrincipalKind(ctx context.Context) string {
	if kind, ok := ctx.Value(principalKindKey).(string); ok {
		return kind
	}
	return ""
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request scoped logger, then defaultLogger, then a no-op logger.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

type Metadata struct {
	RequestID     string
	PrincipalID   string
	PrincipalKind string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID:     GetRequestID(ctx),
		PrincipalID:   GetPrincipalID(ctx),
		PrincipalKind: GetPrincipalKind(ctx),
	}
}
