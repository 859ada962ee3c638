package events

import (
	"context"
	"log/slog"
)

const (
	UserRegistered = "user.registered"
	UserDeleted    = "user.deleted"
	FileUploaded   = "file.uploaded"
	FileDeleted    = "file.deleted"
	BlobOrphaned   = "file.blob_orphaned"
)

// AllTypes lists every event the services publish.
var AllTypes = []string{UserRegistered, UserDeleted, FileUploaded, FileDeleted, BlobOrphaned}

// AuditLogger writes one structured line per lifecycle event.
func AuditLogger(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		level := slog.LevelInfo
		if event.EventType() == BlobOrphaned {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
}

// SubscribeAudit attaches the audit logger to every office event.
func SubscribeAudit(bus *EventBus, logger *slog.Logger) {
	handler := AuditLogger(logger)
	for _, t := range AllTypes {
		bus.Subscribe(t, handler)
	}
}

// Nop discards events; used where no bus is wired.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
