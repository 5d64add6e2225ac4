package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrPoolStopped is returned by Do once the pool's context is cancelled.
var ErrPoolStopped = errors.New("worker pool stopped")

type job struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool runs CPU-bound jobs on a fixed set of workers so they do not compete
// with request handling for every available core.
type Pool struct {
	jobs    chan job
	workers int
	log     zerolog.Logger

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewPool creates a Pool with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewPool(numWorkers int, log zerolog.Logger) *Pool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Pool{
		jobs:    make(chan job, channelBuffer),
		workers: numWorkers,
		log:     log,
		stopped: make(chan struct{}),
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		p.stopOnce.Do(func() { close(p.stopped) })
	}()
}

// Do runs fn on a worker and waits for its result. It gives up when ctx is
// cancelled first; a job already running is left to finish.
func (p *Pool) Do(ctx context.Context, fn func(context.Context) error) error {
	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case p.jobs <- j:
		metrics.HashQueueDepth.Inc()
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrPoolStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrPoolStopped
	}
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			metrics.HashQueueDepth.Dec()
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			err := j.fn(j.ctx)
			if err != nil {
				p.log.Debug().Err(err).Int("worker_id", id).Msg("pool job failed")
			}
			j.done <- err
		}
	}
}
