// Package scheduler coalesces re-render requests into single wake-ups.
//
// No matter how many components signal a state change within one
// execution window, at most one wake-up is in flight at a time, so the
// document is re-rendered at most once per window and never synchronously
// inside the mutation that triggered it.
package scheduler

import "sync/atomic"

// Scheduler is a single-slot re-render request queue. Notify may be
// called from any goroutine; the wake channel is consumed by the single
// run loop that owns the tree.
type Scheduler struct {
	pending atomic.Bool
	wake    chan struct{}
}

// New creates a Scheduler with no pending wake-up.
func New() *Scheduler {
	return &Scheduler{wake: make(chan struct{}, 1)}
}

// Notify requests a re-render. The first call in a window enqueues
// exactly one wake-up; further calls before that wake-up is consumed are
// no-ops, already satisfied by the in-flight request.
func (s *Scheduler) Notify() {
	if s.pending.CompareAndSwap(false, true) {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

// Wake returns the channel a run loop receives from; one receive
// corresponds to one render pass.
func (s *Scheduler) Wake() <-chan struct{} {
	return s.wake
}

// Begin opens a new coalescing window. The run loop calls it after
// consuming a wake-up and before the render body runs, so a Notify made
// during the render schedules exactly one more future pass.
func (s *Scheduler) Begin() {
	s.pending.Store(false)
}

// Pending reports whether a wake-up is currently in flight.
func (s *Scheduler) Pending() bool {
	return s.pending.Load()
}
