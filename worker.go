package qwalk

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Worker processes jobs
type Worker struct {
	id   int
	pool *Q
	jobs chan Job
}

/*
run offers the worker's job channel to the pool, waits for a job, executes
it and stores the result, until the pool context is cancelled.
*/
func (w *Worker) run() {
	for {
		select {
		case <-w.pool.ctx.Done():
			return
		case w.pool.workers <- w.jobs:
		}

		select {
		case <-w.pool.ctx.Done():
			return
		case job, ok := <-w.jobs:
			if !ok {
				return
			}

			result, err := w.processJob(job)
			w.pool.space.Store(job.ID, result, err, job.TTL)
		}
	}
}

func (w *Worker) processJob(job Job) (result any, err error) {
	defer func() {
		w.pool.metrics.recordJobExecution(job.StartTime, err == nil)
	}()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("job %s panicked: %v", job.ID, r)
		}
	}()

	log.Debug("processing job", "worker", w.id, "job", job.ID)

	result, err = job.Fn()
	if err != nil {
		return nil, fmt.Errorf("job %s failed: %w", job.ID, err)
	}

	return result, nil
}
