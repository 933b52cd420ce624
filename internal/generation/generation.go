// Package generation discards stale asynchronous results.
//
// Each request captures a Token from a Tracker before it starts. When the
// result arrives it is applied only if no newer request has been issued for
// the same concern since. Nothing is cancelled on the wire; late results are
// simply dropped.
package generation

import (
	"sync"
	"time"
)

// Token identifies one request of a concern.
type Token uint64

// Tracker issues monotonically increasing tokens for one concern.
// The zero value is ready to use.
type Tracker struct {
	mu      sync.Mutex
	current Token
}

// Next issues a new token, making every earlier token stale.
func (t *Tracker) Next() Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current++
	return t.current
}

// Invalidate makes every issued token stale without issuing a new one.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	t.current++
	t.mu.Unlock()
}

// IsCurrent reports whether tok is the latest token.
func (t *Tracker) IsCurrent(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tok == t.current
}

// Apply runs fn only if tok is still current. The check and fn run under the
// tracker's lock, so a concurrent Next cannot slip in between. It reports
// whether fn ran.
func (t *Tracker) Apply(tok Token, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tok != t.current {
		return false
	}
	fn()
	return true
}

// Debouncer delays a call until no new call has been made for a fixed
// interval.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn, replacing any call still waiting. It reports whether a
// waiting call was dropped.
func (d *Debouncer) Call(fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	dropped := d.timer != nil && d.timer.Stop()
	d.timer = time.AfterFunc(d.delay, fn)
	return dropped
}

// Stop drops the pending call, if any, and reports whether one was dropped.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	dropped := d.timer.Stop()
	d.timer = nil
	return dropped
}
