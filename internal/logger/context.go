package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const OperationIDKey contextKey = "operation_id"

func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, OperationIDKey, id)
}

func GetOperationID(ctx context.Context) string {
	if id, ok := ctx.Value(OperationIDKey).(string); ok {
		return id
	}
	return ""
}

// From returns the default logger annotated with the operation id carried by ctx.
func From(ctx context.Context) *slog.Logger {
	if id := GetOperationID(ctx); id != "" {
		return slog.Default().With("operation_id", id)
	}
	return slog.Default()
}
