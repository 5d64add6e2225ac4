package job

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// PurgeSchedule is how often expired in-memory sessions are dropped.
const PurgeSchedule = "@every 1m"

// ExpiredSessionPurger is implemented by session stores that do not expire
// entries on their own.
type ExpiredSessionPurger interface {
	PurgeExpired() int
}

// SessionPurgeJob periodically removes expired sessions from process memory.
type SessionPurgeJob struct {
	store ExpiredSessionPurger
	log   zerolog.Logger
}

func NewSessionPurgeJob(store ExpiredSessionPurger, log zerolog.Logger) *SessionPurgeJob {
	return &SessionPurgeJob{store: store, log: log}
}

// Run is called by the cron scheduler.
func (j *SessionPurgeJob) Run() {
	if n := j.store.PurgeExpired(); n > 0 {
		j.log.Debug().Int("purged", n).Msg("expired sessions purged")
	}
}

// Schedule registers the job on a new cron scheduler and starts it. The
// caller stops the returned scheduler on shutdown.
func Schedule(j *SessionPurgeJob) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(PurgeSchedule, j); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
