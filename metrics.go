package qwalk

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

type Metrics struct {
	mu                 sync.RWMutex
	WorkerCount        int
	JobQueueSize       int
	JobCount           int64
	FailedJobs         int64
	SchedulingFailures int64
	TotalJobTime       time.Duration
	AverageJobLatency  time.Duration
	P95JobLatency      time.Duration
	MaxJobLatency      time.Duration
	JobSuccessRate     float64

	latencies  []float64
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]float64, 0, 256),
		windowSize: 256,
	}
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalJobTime += duration
	m.JobCount++
	if !success {
		m.FailedJobs++
	}
	m.JobSuccessRate = float64(m.JobCount-m.FailedJobs) / float64(m.JobCount)
	m.AverageJobLatency = m.TotalJobTime / time.Duration(m.JobCount)

	if duration > m.MaxJobLatency {
		m.MaxJobLatency = duration
	}

	m.latencies = append(m.latencies, float64(duration))
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := append([]float64(nil), m.latencies...)
	sort.Float64s(sorted)
	m.P95JobLatency = time.Duration(stat.Quantile(0.95, stat.Empirical, sorted, nil))
}

func (m *Metrics) recordSchedulingFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchedulingFailures++
}

// ExportMetrics returns a snapshot suitable for structured logging
func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"worker_count":        m.WorkerCount,
		"queue_size":          m.JobQueueSize,
		"jobs":                m.JobCount,
		"failed_jobs":         m.FailedJobs,
		"scheduling_failures": m.SchedulingFailures,
		"success_rate":        m.JobSuccessRate,
		"avg_latency":         m.AverageJobLatency,
		"p95_latency":         m.P95JobLatency,
		"max_latency":         m.MaxJobLatency,
	}
}
