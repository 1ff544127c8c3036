// Package context carries the request-scoped values of the admin API: the
// request id, the tagged logger and the resolved caller. Each value is kept
// on echo.Context for handlers and on the request's context.Context for use cases.
package context

import (
	"context"
	"log/slog"

	"saasadmin/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is echoed back on every response.
const HeaderXRequestID = echo.HeaderXRequestID

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
	identityKey
)

// Keys in the echo.Context store.
const (
	echoRequestIDKey = "request_id"
	echoIdentityKey  = "identity"
)

// BindRequest records requestID and a logger tagged with it for the rest of the request.
func BindRequest(c echo.Context, requestID string, logger *slog.Logger) {
	c.Set(echoRequestIDKey, requestID)

	ctx := context.WithValue(c.Request().Context(), requestIDKey, requestID)
	ctx = WithLogger(ctx, logger.With(slog.String("request_id", requestID)))
	c.SetRequest(c.Request().WithContext(ctx))
}

// RequestID returns the id bound by BindRequest, or "" outside a bound request.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok && id != "" {
		return id
	}

	return RequestIDFromContext(c.Request().Context())
}

// RequestIDFromContext returns the bound request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger returns the request logger, or nil.
func Logger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)

	return logger
}

// LoggerOr returns the request logger, falling back to fallback.
func LoggerOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := Logger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// TagLogger adds attrs to the request logger. Requests without one are left alone.
func TagLogger(c echo.Context, attrs ...any) {
	ctx := c.Request().Context()
	if logger := Logger(ctx); logger != nil {
		c.SetRequest(c.Request().WithContext(WithLogger(ctx, logger.With(attrs...))))
	}
}

// SetIdentity stores the caller on both echo.Context and the request context.
func SetIdentity(c echo.Context, identity *entity.ResolvedIdentity) {
	c.Set(echoIdentityKey, identity)
	c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), identityKey, identity)))
}

// Identity returns the caller of an authenticated request, or nil.
func Identity(c echo.Context) *entity.ResolvedIdentity {
	if identity, ok := c.Get(echoIdentityKey).(*entity.ResolvedIdentity); ok {
		return identity
	}

	return IdentityFromContext(c.Request().Context())
}

// IdentityFromContext returns the caller, or nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *entity.ResolvedIdentity {
	identity, _ := ctx.Value(identityKey).(*entity.ResolvedIdentity)

	return identity
}
