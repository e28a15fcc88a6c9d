// Package debounce provides a timer-plus-pending-slot primitive that
// coalesces rapid repeated triggers into a single delayed action carrying the
// latest state.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces calls to Schedule: only the most recently scheduled
// function runs, after the configured interval of quiet. A pending timer is
// reset rather than raced, so writes are serialized.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// New creates a Debouncer with the given interval.
func New(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Schedule replaces any pending function with fn and (re)starts the timer.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs any pending function immediately and stops the timer.
// Used on navigation-away so no scheduled state is lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops any pending function without running it.
// Used when a session is intentionally discarded.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
