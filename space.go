package qwalk

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// QuantumValue wraps a job result with metadata
type QuantumValue struct {
	Value     any
	Error     error
	CreatedAt time.Time
	TTL       time.Duration
}

// QuantumSpace holds job results and hands them to whoever awaits them
type QuantumSpace struct {
	mu      sync.Mutex
	values  map[string]QuantumValue
	waiting map[string][]chan QuantumValue
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func newQuantumSpace(cleanupInterval time.Duration) *QuantumSpace {
	qs := &QuantumSpace{
		values:  make(map[string]QuantumValue),
		waiting: make(map[string][]chan QuantumValue),
		done:    make(chan struct{}),
	}

	qs.wg.Add(1)
	go func() {
		defer qs.wg.Done()
		qs.cleanup(cleanupInterval)
	}()

	return qs
}

// Store records a result and wakes every channel waiting on id
func (qs *QuantumSpace) Store(id string, value any, err error, ttl time.Duration) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qv := QuantumValue{
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
	qs.values[id] = qv
	log.Debug("stored result", "job", id, "err", err)

	for _, ch := range qs.waiting[id] {
		// Await channels are buffered with room for exactly one value.
		ch <- qv
		close(ch)
	}
	delete(qs.waiting, id)
}

// Await returns a channel that receives the result of id once it is stored
func (qs *QuantumSpace) Await(id string) chan QuantumValue {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	ch := make(chan QuantumValue, 1)

	if qv, ok := qs.values[id]; ok {
		ch <- qv
		close(ch)
		return ch
	}

	qs.waiting[id] = append(qs.waiting[id], ch)
	log.Debug("awaiting result", "job", id, "waiting", len(qs.waiting[id]))

	return ch
}

// Forget drops a stored result
func (qs *QuantumSpace) Forget(id string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	delete(qs.values, id)
}

func (qs *QuantumSpace) cleanup(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-qs.done:
			return
		case <-ticker.C:
			qs.mu.Lock()
			qs.cleanupExpiredValues()
			qs.mu.Unlock()
		}
	}
}

func (qs *QuantumSpace) cleanupExpiredValues() {
	now := time.Now()
	for id, qv := range qs.values {
		if qv.TTL > 0 && now.Sub(qv.CreatedAt) > qv.TTL {
			delete(qs.values, id)
		}
	}
}

// Close stops the cleanup loop. Pending Await channels stay open.
func (qs *QuantumSpace) Close() {
	qs.once.Do(func() {
		close(qs.done)
	})
	qs.wg.Wait()
}
