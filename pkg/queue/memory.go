package queue

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"FinSight/pkg/logger"
)

// MemoryQueue is an in-process job queue with a bounded buffer and a worker
// pool. It keeps slow sink writes (archive, event publishing) off the request
// path; messages are dropped with a warning when the buffer is full.
type MemoryQueue struct {
	logger    *logger.Logger
	config    *QueueConfig
	jobs      map[string]Job
	ch        chan *Message
	wg        sync.WaitGroup
	mu        sync.RWMutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
	seq       int64
}

// NewMemoryQueue creates a new in-memory queue.
func NewMemoryQueue(lgr *logger.Logger, config *QueueConfig) *MemoryQueue {
	if config == nil {
		config = &QueueConfig{}
	}
	if config.Workers <= 0 {
		config.Workers = 2
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &MemoryQueue{
		logger: lgr,
		config: config,
		jobs:   make(map[string]Job),
		ch:     make(chan *Message, config.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// RegisterJobs registers multiple jobs.
func (q *MemoryQueue) RegisterJobs(jobs []Job) {
	for _, job := range jobs {
		q.RegisterJob(job)
	}
}

// RegisterJob registers a single job.
func (q *MemoryQueue) RegisterJob(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.jobs[job.Type()]; exists {
		q.logger.Warn("job already registered", logger.String("job", job.Name()))
		return
	}

	q.jobs[job.Type()] = job
	q.logger.Info("job registered",
		logger.String("job", job.Name()),
		logger.String("type", job.Type()))
}

// Start launches the worker pool.
func (q *MemoryQueue) Start() error {
	q.mu.Lock()
	if q.isRunning {
		q.mu.Unlock()
		return fmt.Errorf("queue already running")
	}
	q.isRunning = true
	q.mu.Unlock()

	for i := 0; i < q.config.Workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}

	q.logger.Info("memory queue started", logger.Int("workers", q.config.Workers))
	return nil
}

// PublishMessage enqueues a payload for the job registered under msgType.
func (q *MemoryQueue) PublishMessage(_ context.Context, msgType string, payload interface{}) error {
	q.mu.RLock()
	running := q.isRunning
	q.mu.RUnlock()
	if !running {
		return fmt.Errorf("queue not running")
	}

	q.mu.Lock()
	q.seq++
	id := strconv.FormatInt(q.seq, 10)
	q.mu.Unlock()

	msg := &Message{
		ID:        id,
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case q.ch <- msg:
		return nil
	default:
		q.logger.Warn("queue full, dropping message", logger.String("type", msgType))
		return fmt.Errorf("queue full")
	}
}

func (q *MemoryQueue) worker(id int) {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case msg, ok := <-q.ch:
			if !ok {
				return
			}
			q.process(msg, id)
		}
	}
}

func (q *MemoryQueue) process(msg *Message, workerID int) {
	q.mu.RLock()
	job, ok := q.jobs[msg.Type]
	q.mu.RUnlock()
	if !ok {
		q.logger.Warn("no job registered for message type",
			logger.String("type", msg.Type))
		return
	}

	for {
		err := job.Handle(q.ctx, msg.Payload)
		if err == nil {
			return
		}
		msg.Attempts++
		if msg.Attempts > q.config.RetryLimit {
			q.logger.Error("job failed, giving up",
				logger.String("job", job.Name()),
				logger.String("id", msg.ID),
				logger.Int("attempts", msg.Attempts),
				logger.Int("worker", workerID),
				logger.Error(err))
			return
		}
		q.logger.Warn("job failed, retrying",
			logger.String("job", job.Name()),
			logger.String("id", msg.ID),
			logger.Int("attempts", msg.Attempts),
			logger.Error(err))

		select {
		case <-q.ctx.Done():
			return
		case <-time.After(q.config.RetryDelay):
		}
	}
}

// Stop drains nothing; it cancels the workers and waits for them to exit.
func (q *MemoryQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.isRunning {
		q.mu.Unlock()
		return nil
	}
	q.isRunning = false
	q.mu.Unlock()

	q.cancel()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
