package mailqueue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/attendly/ems-backend-go/internal/pkg/email"
	"github.com/google/uuid"
)

var (
	ErrQueueFull   = errors.New("notification queue full")
	ErrQueueClosed = errors.New("notification queue is shut down")
)

const (
	maxAttempts      = 3
	baseBackoff      = time.Second
	defaultWorkers   = 3
	defaultQueueSize = 100
)

// Job is one email to deliver. Jobs are consumed exactly once; a job
// that still fails after the last retry is dropped and logged.
type Job struct {
	ID      string
	Type    string
	To      string
	Subject string
	HTML    string
	UserID  string
}

type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Job, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(context.Context, Job)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker processing notification", "worker_id", w.ID, "job_id", job.ID, "type", job.Type)
				processFunc(ctx, job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Queue is an in-process notification queue backed by a worker pool.
// Producers never block: a full queue rejects the job immediately.
type Queue struct {
	sender email.Sender
	logger *slog.Logger

	jobQueue   chan Job
	workerPool chan chan Job
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
	closed     bool
	mu         sync.RWMutex
}

type Config struct {
	Workers int
	Buffer  int
}

func New(sender email.Sender, cfg Config, logger *slog.Logger) *Queue {
	ctx, cancel := context.WithCancel(context.Background())

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultQueueSize
	}

	q := &Queue{
		sender:     sender,
		logger:     logger,
		maxWorkers: workers,
		jobQueue:   make(chan Job, buffer),
		workerPool: make(chan chan Job, workers),
		ctx:        ctx,
		cancel:     cancel,
	}

	q.start()

	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.maxWorkers; i++ {
			worker := NewWorker(i, q.workerPool, q.logger)
			worker.Start(q.ctx, &q.wg, q.process)
		}

		q.wg.Add(1)
		go q.dispatch()

		q.logger.Info("notification queue started",
			"workers", q.maxWorkers,
			"buffer", cap(q.jobQueue))
	})
}

func (q *Queue) dispatch() {
	defer q.wg.Done()

	for {
		select {
		case job := <-q.jobQueue:
			select {
			case jobChannel := <-q.workerPool:
				select {
				case jobChannel <- job:
				case <-q.ctx.Done():
					return
				}
			case <-q.ctx.Done():
				return
			}
		case <-q.ctx.Done():
			return
		}
	}
}

// Enqueue submits a job and returns once it is accepted. The returned
// job ID identifies the delivery in logs.
func (q *Queue) Enqueue(job Job) (string, error) {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()
	if closed {
		return "", ErrQueueClosed
	}

	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	select {
	case q.jobQueue <- job:
		q.logger.Info("notification queued",
			"job_id", job.ID,
			"type", job.Type,
			"queue_length", len(q.jobQueue))
		return job.ID, nil
	default:
		q.logger.Warn("notification queue full, rejecting job",
			"type", job.Type,
			"queue_capacity", cap(q.jobQueue))
		return "", ErrQueueFull
	}
}

// process delivers one job with retries: 3 attempts, backoff 1s, 2s.
// Exhausted jobs are dropped with an error log.
func (q *Queue) process(ctx context.Context, job Job) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := q.sender.Send(job.To, job.Subject, job.HTML)
		if err == nil {
			q.logger.Info("notification sent",
				"job_id", job.ID,
				"type", job.Type,
				"attempt", attempt)
			return
		}

		lastErr = err
		q.logger.Warn("notification delivery failed",
			"job_id", job.ID,
			"type", job.Type,
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err)

		if attempt < maxAttempts {
			backoff := baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				q.logger.Warn("notification retry aborted by shutdown", "job_id", job.ID)
				return
			}
		}
	}

	q.logger.Error("notification dropped after final attempt",
		"job_id", job.ID,
		"type", job.Type,
		"user_id", job.UserID,
		"error", lastErr)
}

// Shutdown stops accepting jobs, cancels workers and waits for them to
// finish, or returns when ctx expires first.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.cancel()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info("notification queue shutdown complete")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
