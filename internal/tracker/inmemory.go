package tracker

import (
	"sort"
	"sync"
	"time"
)

// InMemoryResultTracker implements ResultTracker using an in-memory map keyed by
// scenario location. A later attempt of the same location replaces the earlier one.
type InMemoryResultTracker struct {
	mu      sync.RWMutex
	results map[string]Result
	order   []string // locations in first-recorded order
}

// NewInMemoryResultTracker creates a new InMemoryResultTracker.
func NewInMemoryResultTracker() *InMemoryResultTracker {
	return &InMemoryResultTracker{results: make(map[string]Result)}
}

// Record stores r, replacing any earlier result of the same location.
func (t *InMemoryResultTracker) Record(r Result) {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, found := t.results[r.Location]
	if !found {
		t.order = append(t.order, r.Location)
	}
	if r.Attempt == 0 {
		r.Attempt = prev.Attempt + 1
	}
	t.results[r.Location] = r
}

// Get retrieves the latest result for location.
func (t *InMemoryResultTracker) Get(location string) (Result, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, found := t.results[location]
	return r, found
}

// Results returns the latest result of every location in first-recorded order.
func (t *InMemoryResultTracker) Results() []Result {
	t.mu.RLock()
	defer t.mu.RUnlock()
	results := make([]Result, 0, len(t.order))
	for _, loc := range t.order {
		results = append(results, t.results[loc])
	}
	return results
}

// Failed returns the sorted locations whose latest result is not OK.
func (t *InMemoryResultTracker) Failed() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var failed []string
	for loc, r := range t.results {
		if !r.OK() {
			failed = append(failed, loc)
		}
	}
	sort.Strings(failed)
	return failed
}

// Reset forgets every result.
func (t *InMemoryResultTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = make(map[string]Result)
	t.order = nil
}
