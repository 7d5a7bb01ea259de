package testutil

import "sync"

// SeqClock is a resettable logical clock that stamps harness trace events.
//
// The first call to Next returns 1, so a trace replayed from a reset clock
// carries identical sequence numbers and compares equal to its golden file.
//
// Thread-safety: all methods are safe for concurrent use.
type SeqClock struct {
	mu  sync.Mutex
	seq int64
}

// NewSeqClock returns a clock positioned at 0.
func NewSeqClock() *SeqClock {
	return &SeqClock{}
}

// Next advances the clock and returns the new position.
func (c *SeqClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the position without advancing.
func (c *SeqClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset moves the clock back to 0.
func (c *SeqClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
