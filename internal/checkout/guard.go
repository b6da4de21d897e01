package checkout

import "sync/atomic"

// Guard is the per-activation attempt latch. It transitions unset to set
// exactly once and is never reset, so a duplicate trigger of the same
// activation performs no work.
type Guard struct {
	attempted atomic.Bool
}

// FirstAttempt reports whether the caller is the first to trigger the
// activation, setting the latch as a side effect.
func (g *Guard) FirstAttempt() bool {
	return g.attempted.CompareAndSwap(false, true)
}

// Attempted reports whether the latch has been set.
func (g *Guard) Attempted() bool {
	return g.attempted.Load()
}
