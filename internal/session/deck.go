package session

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/observability"
	"github.com/claude/eyerest/internal/trainer"
	"github.com/jonboulle/clockwork"
)

// Deck is the trainers page: at most one trainer is selected, and only the
// selected trainer's value moves.
type Deck struct {
	page   models.TrainerPage
	driver *trainer.Driver
	hub    *Hub
	clock  clockwork.Clock
	log    *slog.Logger

	// current is read by the frame observer, which must not take mu.
	current atomic.Pointer[models.Trainer]

	mu         sync.Mutex
	activation *trainer.Activation
	closed     bool
}

func newDeck(page models.TrainerPage, clock clockwork.Clock, hub *Hub, log *slog.Logger, opts ...trainer.Option) *Deck {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	d := &Deck{
		page:  page,
		hub:   hub,
		clock: clock,
		log:   log.With("page", "trainers"),
	}
	opts = append([]trainer.Option{trainer.WithClock(clock)}, opts...)
	d.driver = trainer.NewDriver(d.onFrame, opts...)
	return d
}

// Page returns the trainer descriptors.
func (d *Deck) Page() models.TrainerPage {
	return d.page
}

func (d *Deck) lookup(id string) (models.Trainer, bool) {
	for _, t := range d.page.Trainers {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trainer{}, false
}

// Select makes trainerID the active trainer. The previously selected
// trainer's schedule is released before the new one starts.
func (d *Deck) Select(trainerID string) (models.DeckState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return models.DeckState{}, ErrClosed
	}
	tr, ok := d.lookup(trainerID)
	if !ok {
		return d.stateLocked(), ErrUnknownTrainer
	}
	if cur := d.current.Load(); cur != nil && cur.ID == tr.ID {
		return d.stateLocked(), nil
	}

	// Activate releases a different kind's schedule before starting this
	// one; a trainer of the same kind keeps the running schedule.
	act, err := d.driver.Activate(tr.Kind)
	if err != nil {
		return d.stateLocked(), err
	}
	prev := d.current.Swap(&tr)
	d.activation = act

	if prev != nil {
		d.publishSelection(*prev, false)
	}
	d.publishSelection(tr, true)

	d.log.Info("trainer selected", "trainer", tr.ID, "kind", tr.Kind, "activation", act.ID())
	observability.RecordTrainerActivation(string(tr.Kind))
	return d.stateLocked(), nil
}

// Deselect closes the active trainer. Its last value is kept.
func (d *Deck) Deselect() models.DeckState {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deselectLocked()
	return d.stateLocked()
}

// State returns the selected trainer and every retained frame.
func (d *Deck) State() models.DeckState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

// Close deselects and rejects later selections.
func (d *Deck) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deselectLocked()
	d.closed = true
}

func (d *Deck) deselectLocked() {
	prev := d.current.Load()
	if prev == nil {
		return
	}
	if d.activation != nil {
		d.activation.Close()
		d.activation = nil
	}
	d.current.Store(nil)
	d.publishSelection(*prev, false)
	d.log.Info("trainer closed", "trainer", prev.ID)
}

func (d *Deck) stateLocked() models.DeckState {
	st := models.DeckState{Frames: d.driver.Frames()}
	if cur := d.current.Load(); cur != nil {
		id := cur.ID
		st.ActiveTrainer = &id
		if d.activation != nil {
			st.ActivationID = d.activation.ID().String()
		}
	}
	return st
}

func (d *Deck) publishSelection(tr models.Trainer, selected bool) {
	frame := d.driver.Frame(tr.Kind)
	d.hub.Publish(models.Event{
		Type:      models.EventTrainer,
		Time:      d.clock.Now(),
		TrainerID: tr.ID,
		Selected:  &selected,
		Frame:     &frame,
	})
}

// onFrame runs under the driver's frame lock.
func (d *Deck) onFrame(f trainer.Frame) {
	ev := models.Event{
		Type:  models.EventTrainer,
		Time:  d.clock.Now(),
		Frame: &f,
	}
	if cur := d.current.Load(); cur != nil && cur.Kind == f.Kind {
		ev.TrainerID = cur.ID
	}
	d.hub.Publish(ev)
	observability.RecordTrainerTick(string(f.Kind))
}
