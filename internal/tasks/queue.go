// Package tasks runs provider fetches on a bounded worker pool with retries.
package tasks

import (
	"context"
	"errors"
	"sync"
	"time"

	"weather-backend/pkg/logger"
)

// ErrTooManyRetries reports that a job failed on every allowed attempt.
var ErrTooManyRetries = errors.New("too many retries")

var errQueueClosed = errors.New("queue is stopped")

// Job produces a payload or an error. Any error counts as retryable.
type Job func(ctx context.Context) ([]byte, error)

type result struct {
	payload []byte
	err     error
}

type task struct {
	ctx context.Context
	job Job
	out chan result
}

// Queue distributes jobs over a fixed set of workers. Each job is attempted
// up to limit times with a fixed delay between attempts.
type Queue struct {
	tasks chan task
	wg    sync.WaitGroup

	limit int
	delay time.Duration

	mu      sync.Mutex
	stopped bool

	l *logger.Logger
}

func NewQueue(workers, size, retryLimit int, retryDelay time.Duration, l *logger.Logger) *Queue {
	if workers < 1 {
		workers = 1
	}
	if retryLimit < 1 {
		retryLimit = 1
	}

	q := &Queue{
		tasks: make(chan task, size),
		limit: retryLimit,
		delay: retryDelay,
		l:     l,
	}

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}

	return q
}

// Submit enqueues the job and blocks until it finishes or ctx is done.
func (q *Queue) Submit(ctx context.Context, job Job) ([]byte, error) {
	out := make(chan result, 1)

	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return nil, errQueueClosed
	}
	select {
	case q.tasks <- task{ctx: ctx, job: job, out: out}:
		q.mu.Unlock()
	default:
		q.mu.Unlock()
		return nil, errors.New("queue is full")
	}

	select {
	case res := <-out:
		return res.payload, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.tasks)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for t := range q.tasks {
		t.out <- q.run(t.ctx, t.job)
	}
}

func (q *Queue) run(ctx context.Context, job Job) result {
	var lastErr error

	for attempt := 1; attempt <= q.limit; attempt++ {
		if ctx.Err() != nil {
			return result{err: ctx.Err()}
		}

		payload, err := job(ctx)
		if err == nil {
			return result{payload: payload}
		}

		lastErr = err
		q.l.Warning("job attempt failed", map[string]any{
			"attempt": attempt,
			"limit":   q.limit,
			"error":   err.Error(),
		})

		if attempt == q.limit {
			break
		}

		select {
		case <-time.After(q.delay):
		case <-ctx.Done():
			return result{err: ctx.Err()}
		}
	}

	q.l.Error(lastErr, map[string]any{"attempts": q.limit})
	return result{err: ErrTooManyRetries}
}
