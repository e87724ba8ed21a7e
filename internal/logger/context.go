package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	visitorKey   ctxKey = "visitor"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithVisitor tags the context with the storefront visitor (device or ip).
func WithVisitor(ctx context.Context, visitor string) context.Context {
	return context.WithValue(ctx, visitorKey, visitor)
}

func VisitorFrom(ctx context.Context) string {
	if v, ok := ctx.Value(visitorKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns logger with request_id and visitor automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if visitor := VisitorFrom(ctx); visitor != "" {
		l = l.With(zap.String("visitor", visitor))
	}
	return l
}
