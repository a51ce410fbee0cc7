package services

import (
	"context"
	"log/slog"
	"time"
)

type contextKey string

// RequestIDContextKey carries the request id on a request's context
const RequestIDContextKey contextKey = "request_id"

// WithRequestID returns a copy of ctx carrying requestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// ActivityLogger provides structured logging for category, tag and expense changes
type ActivityLogger struct {
	logger *slog.Logger
}

// NewActivityLogger creates a new activity logger
func NewActivityLogger(logger *slog.Logger) ActivityLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityLogger{
		logger: logger,
	}
}

// LogCreated logs the creation of an entity
func (al *ActivityLogger) LogCreated(ctx context.Context, entity string, id int64) {
	al.logger.InfoContext(ctx, entity+" created",
		slog.String("event_type", entity+"_created"),
		slog.Int64("id", id),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogUpdated logs which fields of an entity were written
func (al *ActivityLogger) LogUpdated(ctx context.Context, entity string, id int64, fields []string) {
	al.logger.InfoContext(ctx, entity+" updated",
		slog.String("event_type", entity+"_updated"),
		slog.Int64("id", id),
		slog.Any("fields", fields),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogDeleted logs a delete request and whether anything was removed
func (al *ActivityLogger) LogDeleted(ctx context.Context, entity string, id int64, deleted bool) {
	al.logger.InfoContext(ctx, entity+" deleted",
		slog.String("event_type", entity+"_deleted"),
		slog.Int64("id", id),
		slog.Bool("found", deleted),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogTagsDropped logs tag ids that were ignored because no such tag exists
func (al *ActivityLogger) LogTagsDropped(ctx context.Context, expenseID int64, requested, attached int) {
	al.logger.WarnContext(ctx, "unknown tag ids ignored",
		slog.String("event_type", "expense_tags_dropped"),
		slog.Int64("expense_id", expenseID),
		slog.Int("requested", requested),
		slog.Int("attached", attached),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogFailed logs a failed operation
func (al *ActivityLogger) LogFailed(ctx context.Context, entity, operation string, err error) {
	al.logger.WarnContext(ctx, entity+" "+operation+" failed",
		slog.String("event_type", entity+"_"+operation+"_failed"),
		slog.String("error", err.Error()),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

func getRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}
