package jobs

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid repeated triggers into one trailing call: the
// function runs only after triggers pause for the configured delay, and each
// new trigger cancels the pending one. Used for free-text filter input so
// the criteria update fires once per typing burst, carrying the final value.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, cancelling any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call. Called when the view goes away so a stale
// callback cannot fire afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
