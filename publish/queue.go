package publish

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/marcelsud/content-webhook/webhook"
	"github.com/rs/zerolog"
)

// Handler runs one task to completion
type Handler interface {
	Process(ctx context.Context, task webhook.Task)
}

/* Queue runs every enqueued task on its own goroutine, at most concurrency at a time.
 * Tasks do not share ordering and cannot be cancelled once enqueued.
 */
type Queue struct {
	handler Handler
	sem     chan struct{}
	logger  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
	inFlight atomic.Int64
}

func NewQueue(handler Handler, concurrency int, logger zerolog.Logger) *Queue {
	if concurrency <= 0 {
		concurrency = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		handler: handler,
		sem:     make(chan struct{}, concurrency),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Enqueue returns immediately. Tasks enqueued after Shutdown are dropped and stay queued in storage.
func (q *Queue) Enqueue(task webhook.Task) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.logger.Warn().Str("trackingId", task.Job.TrackingID).Msg("queue is shut down, task dropped")
		return
	}

	q.wg.Add(1)
	go q.run(task)
}

func (q *Queue) run(task webhook.Task) {
	defer q.wg.Done()

	select {
	case q.sem <- struct{}{}:
	case <-q.ctx.Done():
		q.logger.Warn().Str("trackingId", task.Job.TrackingID).Msg("queue stopped before task started")
		return
	}
	q.inFlight.Add(1)
	defer func() {
		q.inFlight.Add(-1)
		<-q.sem
	}()

	defer func() {
		if r := recover(); r != nil {
			q.logger.Error().
				Str("trackingId", task.Job.TrackingID).
				Interface("panic", r).
				Msg("task panicked")
		}
	}()

	q.handler.Process(q.ctx, task)
}

// InFlight returns the number of tasks currently being processed
func (q *Queue) InFlight() int64 {
	return q.inFlight.Load()
}

// Wait blocks until every enqueued task has returned
func (q *Queue) Wait() {
	q.wg.Wait()
}

/* Shutdown stops accepting tasks and waits for the running ones.
 * When ctx expires first, running tasks see their context cancelled and ctx.Err() is returned.
 */
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		return ctx.Err()
	}
}
