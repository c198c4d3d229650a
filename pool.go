package qwalk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

// Q is a fixed-size worker pool whose results land in a QuantumSpace
type Q struct {
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	workers    chan chan Job
	jobs       chan Job
	space      *QuantumSpace
	metrics    *Metrics
	workerMu   sync.Mutex
	workerList []*Worker
	config     *Config
	closeOnce  sync.Once
}

// NewQ starts a pool with the given number of workers
func NewQ(ctx context.Context, workers int, config *Config) *Q {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	q := &Q{
		ctx:        ctx,
		cancel:     cancel,
		workerList: make([]*Worker, 0, workers),
		jobs:       make(chan Job, workers*10),
		workers:    make(chan chan Job, workers),
		space:      newQuantumSpace(time.Minute),
		metrics:    NewMetrics(),
		config:     config,
	}

	for i := 0; i < workers; i++ {
		q.startWorker()
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.manage()
	}()

	errnie.Info("quantum pool started with %d workers", workers)

	return q
}

// Pool management
func (q *Q) manage() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			select {
			case <-q.ctx.Done():
				return
			case workerChan := <-q.workers:
				select {
				case workerChan <- job:
				case <-q.ctx.Done():
					return
				}
			case <-time.After(q.getSchedulingTimeout()):
				log.Warn("no available workers", "job", job.ID)
				q.space.Store(job.ID, nil, fmt.Errorf("no available workers for job %s", job.ID), job.TTL)
			}
		}
	}
}

/*
Schedule queues fn under id and returns the channel its result will be
delivered on. Queueing gives up after the scheduling timeout, in which case
the channel carries the error.
*/
func (q *Q) Schedule(id string, fn func() (any, error), opts ...JobOption) chan QuantumValue {
	ctx, cancel := context.WithTimeout(q.ctx, q.getSchedulingTimeout())
	defer cancel()

	job := Job{
		ID:        id,
		Fn:        fn,
		StartTime: time.Now(),
	}

	for _, opt := range opts {
		opt(&job)
	}

	// Register before enqueueing so a fast worker cannot store first.
	result := q.space.Await(id)

	if err := q.ctx.Err(); err != nil {
		q.space.Store(id, nil, fmt.Errorf("pool closed: %w", err), job.TTL)
		return result
	}

	select {
	case q.jobs <- job:
		q.metrics.mu.Lock()
		q.metrics.JobQueueSize = len(q.jobs)
		q.metrics.mu.Unlock()
		return result
	case <-ctx.Done():
		q.metrics.recordSchedulingFailure()
		q.space.Store(id, nil, fmt.Errorf("job scheduling timeout: %w", ctx.Err()), job.TTL)
		return result
	}
}

// Metrics returns the pool's metrics
func (q *Q) Metrics() *Metrics {
	return q.metrics
}

func (q *Q) startWorker() {
	q.workerMu.Lock()
	worker := &Worker{
		id:   len(q.workerList),
		pool: q,
		jobs: make(chan Job),
	}
	q.workerList = append(q.workerList, worker)
	q.workerMu.Unlock()

	q.metrics.mu.Lock()
	q.metrics.WorkerCount++
	q.metrics.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		worker.run()
	}()
}

func (q *Q) getSchedulingTimeout() time.Duration {
	if q.config != nil && q.config.SchedulingTimeout > 0 {
		return q.config.SchedulingTimeout
	}
	return 5 * time.Second
}

// Close cancels the pool and waits for every goroutine to exit
func (q *Q) Close() {
	if q == nil {
		return
	}

	q.closeOnce.Do(func() {
		q.cancel()
		q.wg.Wait()
		q.space.Close()
		errnie.Info("quantum pool closed")
	})
}
