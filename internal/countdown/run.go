package countdown

import (
	"time"

	"github.com/claude/eyerest/internal/schedule"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the real-time spacing between ticks.
const DefaultInterval = time.Second

// Run is a scheduled countdown session. It ends on its own when the timer
// expires, or when Stop is called.
type Run struct {
	id    uuid.UUID
	timer *Timer
	loop  *schedule.Loop
}

// Config controls how a Run is scheduled.
type Config struct {
	// Clock drives the ticks. Nil means the real clock.
	Clock clockwork.Clock
	// Interval between ticks. Zero means DefaultInterval.
	Interval time.Duration
	// ID names the session. Zero means a fresh random id.
	ID uuid.UUID
}

// Start creates a timer, arms it with seconds and ticks it on cfg's
// schedule until it expires or is stopped.
func Start(cfg Config, seconds int, notify Observer) (*Run, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}

	r := &Run{id: cfg.ID, timer: NewTimer(notify)}
	if err := r.timer.Start(seconds); err != nil {
		return nil, err
	}

	r.loop = schedule.Every(cfg.Clock, cfg.Interval, func() bool {
		return r.timer.Tick().Running
	})
	return r, nil
}

// ID identifies this session.
func (r *Run) ID() uuid.UUID {
	return r.id
}

// Snapshot returns the current timer state.
func (r *Run) Snapshot() Snapshot {
	return r.timer.Snapshot()
}

// Running reports whether the session is still counting down.
func (r *Run) Running() bool {
	return r.timer.Snapshot().Running
}

// Stop cancels the session and waits for its schedule to be released.
// It reports whether the timer was still running. Safe to call after the
// session has expired and safe to call more than once.
func (r *Run) Stop() bool {
	stopped := r.timer.Stop()
	r.loop.Cancel()
	return stopped
}

// Done is closed once the schedule has been released.
func (r *Run) Done() <-chan struct{} {
	return r.loop.Done()
}
