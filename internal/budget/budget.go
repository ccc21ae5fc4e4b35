// Package budget implements the shared match cap consulted by scan workers.
package budget

import "sync"

// Budget is a cross-worker counter that admits at most Limit matches.
//
// All workers of one search share a single Budget; every decision is taken
// under one mutex. Which matches win when workers race is up to the
// scheduler, only the admitted count is bounded.
//
// A nil *Budget admits everything.
type Budget struct {
	mu       sync.Mutex
	accepted int
	limit    int
}

// New returns a Budget admitting at most limit matches, or nil when limit
// is not positive.
func New(limit int) *Budget {
	if limit <= 0 {
		return nil
	}
	return &Budget{limit: limit}
}

// TryAccept admits one more match if the limit has not been reached.
// A false return tells the caller to stop scanning.
func (b *Budget) TryAccept() bool {
	if b == nil {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.accepted >= b.limit {
		return false
	}
	b.accepted++
	return true
}

// Accepted returns the number of admitted matches so far.
func (b *Budget) Accepted() int {
	if b == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.accepted
}

// Limit returns the cap, or -1 for a nil Budget.
func (b *Budget) Limit() int {
	if b == nil {
		return -1
	}
	return b.limit
}
