// Package watch re-resolves tools when the directories they are searched in change.
package watch

import (
	"sync"
	"time"
)

// MaxPending is the maximum number of keys that can be pending.
// Reaching it triggers an immediate flush.
const MaxPending = 1000

// Debouncer coalesces bursts of events into one batch of distinct keys.
// A package manager installing a toolchain touches many files in a few
// milliseconds; the batch is delivered once the burst has been quiet for the window.
type Debouncer[K comparable] struct {
	mu      sync.Mutex
	pending map[K]struct{}
	timer   *time.Timer
	window  time.Duration
	onFlush func(keys []K)
	stopped bool
}

// NewDebouncer creates a debouncer with the given window duration.
// onFlush receives the distinct keys added since the last flush.
func NewDebouncer[K comparable](window time.Duration, onFlush func(keys []K)) *Debouncer[K] {
	return &Debouncer[K]{
		pending: make(map[K]struct{}),
		window:  window,
		onFlush: onFlush,
	}
}

// Add records key. Repeated keys within the window are coalesced.
func (d *Debouncer[K]) Add(key K) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[key] = struct{}{}

	if len(d.pending) >= MaxPending {
		if d.timer != nil {
			d.timer.Stop()
			d.timer = nil
		}
		d.flushLocked()
		return
	}

	// timer.Stop may lose the race with a firing timer; flush then sees an
	// empty set and returns early.
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

// flush is called when the timer expires.
func (d *Debouncer[K]) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushLocked()
}

// flushLocked delivers the pending keys. Caller must hold d.mu; the lock is
// released while onFlush runs.
func (d *Debouncer[K]) flushLocked() {
	if d.stopped || len(d.pending) == 0 {
		return
	}

	keys := d.takeLocked()

	d.mu.Unlock()
	if d.onFlush != nil {
		d.onFlush(keys)
	}
	d.mu.Lock()
}

// takeLocked returns and clears the pending keys. Caller must hold d.mu.
func (d *Debouncer[K]) takeLocked() []K {
	keys := make([]K, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	d.pending = make(map[K]struct{})
	return keys
}

// FlushNow delivers pending keys without waiting for the timer.
func (d *Debouncer[K]) FlushNow() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	keys := d.takeLocked()
	d.mu.Unlock()

	if d.onFlush != nil {
		d.onFlush(keys)
	}
}

// Stop stops the debouncer. Pending keys are flushed; later Adds are ignored.
func (d *Debouncer[K]) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	keys := d.takeLocked()
	d.mu.Unlock()

	if len(keys) > 0 && d.onFlush != nil {
		d.onFlush(keys)
	}
}

// PendingCount returns the number of keys waiting to be flushed.
func (d *Debouncer[K]) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
