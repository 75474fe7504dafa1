package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
)

var (
	ErrQueueFull       = errors.New("worker queue full")
	ErrPoolClosed      = errors.New("worker pool closed")
	ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
)

// Job is one unit of background work, typically cache invalidation after a
// committed balance mutation.
type Job struct {
	ID      string
	Task    func() error
	RetryOn func(error) bool
	OnDone  func(error)
}

// Pool runs jobs on a fixed set of workers fed from a bounded queue.
type Pool struct {
	workers    int
	maxRetries int
	jobQueue   chan Job
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	mu     sync.Mutex
	closed bool
	stats  Stats
}

type Stats struct {
	Completed int64
	Failed    int64
	Queued    int
}

func NewPool(workers, queueSize, maxRetries int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		workers:    workers,
		maxRetries: maxRetries,
		jobQueue:   make(chan Job, queueSize),
		ctx:        ctx,
		cancel:     cancel,
	}
	utils.LogInfo("WorkerPool", "pool created: %d workers, queue %d, retries %d", workers, queueSize, maxRetries)
	return p
}

func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	utils.LogSuccess("WorkerPool", "%d workers started", p.workers)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.run(id, job)
		}
	}
}

func (p *Pool) run(workerID int, job Job) {
	start := time.Now()
	var err error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			utils.LogWarning("WorkerPool", "worker #%d: retry #%d for job %s", workerID, attempt, job.ID)
			time.Sleep(time.Duration(100*attempt) * time.Millisecond)
		}

		if err = job.Task(); err == nil {
			p.mu.Lock()
			p.stats.Completed++
			p.mu.Unlock()
			utils.LogDebug("WorkerPool", "worker #%d: job %s done in %v", workerID, job.ID, time.Since(start))
			if job.OnDone != nil {
				job.OnDone(nil)
			}
			return
		}

		if job.RetryOn != nil && !job.RetryOn(err) {
			break
		}
	}

	p.mu.Lock()
	p.stats.Failed++
	p.mu.Unlock()
	utils.LogError("WorkerPool", fmt.Sprintf("worker #%d: job %s failed after %v", workerID, job.ID, time.Since(start)), err)
	if job.OnDone != nil {
		job.OnDone(err)
	}
}

// Submit enqueues a job without blocking; a full queue returns ErrQueueFull
// so the caller can fall back to running the task inline. After Shutdown it
// returns ErrPoolClosed. The send happens under the mutex so Shutdown cannot
// close the queue mid-submit.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		utils.LogWarning("WorkerPool", "queue full, job %s rejected", job.ID)
		return ErrQueueFull
	}
}

// Shutdown drains the queue and waits for workers up to timeout, then cancels
// them forcibly. Idempotent.
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobQueue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		utils.LogSuccess("WorkerPool", "all workers stopped")
		return nil
	case <-time.After(timeout):
		p.cancel()
		utils.LogWarning("WorkerPool", "shutdown timeout exceeded, forcing cancellation")
		return ErrShutdownTimeout
	}
}

func (p *Pool) GetStats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Queued = len(p.jobQueue)
	return s
}
