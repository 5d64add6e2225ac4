package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// LogRecorder writes audit events to the structured log. It is used when no
// audit database is configured.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(log zerolog.Logger) *LogRecorder {
	return &LogRecorder{log: log.With().Str("component", "audit").Logger()}
}

func (r *LogRecorder) Record(_ context.Context, ev domain.AuditEvent) error {
	e := r.log.Info().
		Str("audit_id", ev.ID).
		Str("action", string(ev.Action)).
		Time("at", ev.At)
	if ev.ActorID != 0 {
		e = e.Int64("actor_id", ev.ActorID).Str("actor_name", ev.ActorName)
	}
	if ev.TargetID != 0 {
		e = e.Int64("target_id", ev.TargetID)
	}
	if ev.Detail != "" {
		e = e.Str("detail", ev.Detail)
	}
	e.Msg("audit")
	return nil
}
