package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
	"github.com/taplejung/menu-system/pkg/logger"
)

// recordAudit stamps the event with an id, time and the acting session from
// ctx, then hands it to rec. Failures are logged and swallowed.
func recordAudit(ctx context.Context, rec ports.AuditRecorder, log zerolog.Logger, ev domain.AuditEvent) {
	if rec == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.At = time.Now().UTC()
	if sess := domain.SessionFromContext(ctx); sess != nil && ev.ActorID == 0 {
		ev.ActorID = sess.UserID
		ev.ActorName = sess.Name
	}
	if err := rec.Record(ctx, ev); err != nil {
		l := logger.FromContext(ctx, log)
		l.Warn().Err(err).Str("action", string(ev.Action)).Msg("audit record failed")
	}
}
