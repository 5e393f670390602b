package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// Logger writes events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metadataJSON(ev.Metadata),
		CreatedAt: ev.OccurredAt,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// SlogSink logs every event at info level.
func SlogSink(log *slog.Logger) Sink {
	return SinkFunc(func(ctx context.Context, ev Event) error {
		log.InfoContext(ctx, "audit event",
			slog.String("action", ev.Action),
			slog.String("entity", ev.Entity),
			slog.String("entity_id", ev.EntityID),
		)
		return nil
	})
}

func metadataJSON(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
