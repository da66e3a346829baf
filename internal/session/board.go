package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/claude/eyerest/internal/countdown"
	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Board runs the countdown for one routine page. Only one of its exercises
// may be running at a time; a start while another is running is rejected.
type Board struct {
	routine  models.Routine
	clock    clockwork.Clock
	interval time.Duration
	hub      *Hub
	log      *slog.Logger

	mu       sync.Mutex
	run      *countdown.Run
	exercise int
	closed   bool
}

func newBoard(routine models.Routine, clock clockwork.Clock, interval time.Duration, hub *Hub, log *slog.Logger) *Board {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Board{
		routine:  routine,
		clock:    clock,
		interval: interval,
		hub:      hub,
		log:      log.With("routine", routine.Slug),
	}
}

// Routine returns the routine descriptor.
func (b *Board) Routine() models.Routine {
	return b.routine
}

// Start begins the countdown for exerciseID.
func (b *Board) Start(exerciseID int) (models.BoardState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return models.BoardState{}, ErrClosed
	}
	if b.run != nil && b.run.Running() {
		return b.stateLocked(), ErrSessionActive
	}
	ex, ok := b.routine.Exercise(exerciseID)
	if !ok {
		return b.stateLocked(), ErrUnknownExercise
	}

	// Release the schedule of a previous session that expired on its own.
	if b.run != nil {
		b.run.Stop()
		b.run = nil
	}

	id := uuid.New()
	run, err := countdown.Start(countdown.Config{
		Clock:    b.clock,
		Interval: b.interval,
		ID:       id,
	}, ex.DurationSeconds, b.observer(ex.ID, id))
	if err != nil {
		return b.stateLocked(), err
	}
	b.run = run
	b.exercise = ex.ID

	b.log.Info("exercise started", "exercise", ex.ID, "session", id, "seconds", ex.DurationSeconds)
	observability.RecordSessionStarted(b.routine.Slug)
	return b.stateLocked(), nil
}

// Stop cancels the running exercise, if any. The returned state is idle.
func (b *Board) Stop() models.BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	return b.stateLocked()
}

// State returns the current board state.
func (b *Board) State() models.BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Close stops any running exercise and rejects later starts.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.closed = true
}

func (b *Board) stopLocked() {
	if b.run == nil {
		return
	}
	if b.run.Stop() {
		b.log.Info("exercise stopped", "exercise", b.exercise, "session", b.run.ID())
	}
	b.run = nil
}

func (b *Board) stateLocked() models.BoardState {
	st := models.BoardState{Routine: b.routine.Slug}
	if b.run == nil {
		return st
	}
	snap := b.run.Snapshot()
	if !snap.Running {
		// Expired sessions no longer hold the active marker.
		return st
	}
	ex := b.exercise
	st.SessionID = b.run.ID().String()
	st.ActiveExercise = &ex
	st.Remaining = snap.Remaining
	st.Running = true
	return st
}

// observer publishes every countdown signal. It runs under the timer lock,
// so it only touches the hub and metrics, never b.mu.
func (b *Board) observer(exerciseID int, id uuid.UUID) countdown.Observer {
	slug := b.routine.Slug
	sid := id.String()
	return func(sig countdown.Signal, snap countdown.Snapshot) {
		b.hub.Publish(models.Event{
			Type:       models.EventCountdown,
			Time:       b.clock.Now(),
			Routine:    slug,
			ExerciseID: exerciseID,
			SessionID:  sid,
			Signal:     sig,
			Remaining:  snap.Remaining,
			Running:    snap.Running,
		})
		switch sig {
		case countdown.SignalExpired, countdown.SignalStopped:
			observability.RecordSessionFinished(slug, string(sig))
		}
		if sig == countdown.SignalExpired {
			b.log.Info("exercise finished", "exercise", exerciseID, "session", sid)
		}
	}
}
