package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock is a Lamport clock stamping the ops a collection emits.
type Clock struct {
	site    string
	lamport atomic.Uint64
}

// NewClock returns a clock with a fresh random site ID.
func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

// Site returns the ID this clock stamps onto ops.
func (c *Clock) Site() string { return c.site }

// Tick advances the clock and returns the new time.
func (c *Clock) Tick() uint64 {
	return c.lamport.Add(1)
}

// Observe moves the clock forward to at least remote.
func (c *Clock) Observe(remote uint64) {
	for {
		cur := c.lamport.Load()
		if remote <= cur || c.lamport.CompareAndSwap(cur, remote) {
			return
		}
	}
}

// Now returns the current time without advancing it.
func (c *Clock) Now() uint64 { return c.lamport.Load() }

// stamp fills in the clock fields of op.
func (c *Clock) stamp(op Op) Op {
	op.Lamport = c.Tick()
	op.Site = c.site
	return op
}
