// Package countdown implements the per-exercise countdown: a two-state
// timer (idle, running) that loses one second per tick and reports how it
// ended.
package countdown

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidDuration is returned when Start is given a non-positive duration.
	ErrInvalidDuration = errors.New("countdown: duration must be positive")
	// ErrRunning is returned when Start is called on a running timer.
	ErrRunning = errors.New("countdown: already running")
)

// Signal identifies a state change reported to the observer.
type Signal string

const (
	SignalStarted Signal = "started"
	SignalTick    Signal = "tick"
	SignalExpired Signal = "expired"
	SignalStopped Signal = "stopped"
)

// Snapshot is the observable timer state.
type Snapshot struct {
	Remaining int  `json:"remaining_seconds"`
	Running   bool `json:"running"`
}

// Observer receives every signal together with the state it produced.
// It is called with the timer lock held and must not call back into the Timer.
type Observer func(Signal, Snapshot)

// Timer is the countdown state machine. It holds no schedule of its own;
// Tick is driven by a Run or directly by a caller.
type Timer struct {
	mu        sync.Mutex
	remaining int
	running   bool
	notify    Observer
}

// NewTimer returns an idle timer. notify may be nil.
func NewTimer(notify Observer) *Timer {
	if notify == nil {
		notify = func(Signal, Snapshot) {}
	}
	return &Timer{notify: notify}
}

// Start arms the timer with seconds remaining.
func (t *Timer) Start(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDuration
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrRunning
	}
	t.remaining = seconds
	t.running = true
	t.notify(SignalStarted, t.snapshotLocked())
	return nil
}

// Tick consumes one second. The tick that reaches zero ends the session
// with SignalExpired. Ticks on an idle timer are ignored.
func (t *Timer) Tick() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return t.snapshotLocked()
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
		t.notify(SignalExpired, t.snapshotLocked())
	} else {
		t.notify(SignalTick, t.snapshotLocked())
	}
	return t.snapshotLocked()
}

// Stop cancels a running session. It reports whether anything was stopped;
// stopping an idle timer emits nothing.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return false
	}
	t.running = false
	t.remaining = 0
	t.notify(SignalStopped, t.snapshotLocked())
	return true
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{Remaining: t.remaining, Running: t.running}
}
