// Package bandwidth implements the running byte-count attribution the
// receive-side detours feed on every successful call. It is deliberately
// simple: a mutex-guarded running total plus a windowed sub-total, with no
// exported UI of its own (the meter surface that reads this data is an
// external collaborator, out of scope here).
package bandwidth

import "sync"

// Counter is a process-wide running total of bytes attributed to
// intercepted receive calls.
type Counter struct {
	mu     sync.Mutex
	total  uint64
	window uint64

	// sent tracks the optional send-side tally (SPEC_FULL.md §4.6's
	// supplemented send detour); it is additive and never required by
	// any invariant on the receive path.
	sent uint64
}

// New returns a zeroed counter.
func New() *Counter {
	return &Counter{}
}

// Add attributes n bytes (n must be >= 0; callers pass the sockets-layer
// error sentinel's non-negative check results, never a raw negative
// return value) to both the running total and the current window.
func (c *Counter) Add(n int64) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.total += uint64(n)
	c.window += uint64(n)
	c.mu.Unlock()
}

// AddSent attributes n bytes to the send-side tally.
func (c *Counter) AddSent(n int64) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.sent += uint64(n)
	c.mu.Unlock()
}

// Snapshot returns the running total, the current window total, and the
// send-side total without resetting anything.
func (c *Counter) Snapshot() (total, window, sent uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, c.window, c.sent
}

// ResetWindow zeroes the windowed sub-total, leaving the running total
// untouched. Called by the (external) bandwidth meter on its own cadence.
func (c *Counter) ResetWindow() {
	c.mu.Lock()
	c.window = 0
	c.mu.Unlock()
}
