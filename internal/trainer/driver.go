// Package trainer drives the animated trainer widgets. Each kind owns one
// value (dot position, target size, line angle) that changes on a fixed
// period while that kind is active.
package trainer

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/claude/eyerest/internal/schedule"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ErrUnknownKind is returned for a kind outside Kinds.
var ErrUnknownKind = errors.New("trainer: unknown kind")

// Observer is called with every new frame. It runs with the driver's frame
// lock held and must not call back into the Driver.
type Observer func(Frame)

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the clock used for periods.
func WithClock(c clockwork.Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithRand sets the random source for the position kind.
func WithRand(r *rand.Rand) Option {
	return func(d *Driver) { d.rng = r }
}

// WithPeriod overrides the period of one kind. Non-positive values are ignored.
func WithPeriod(kind Kind, period time.Duration) Option {
	return func(d *Driver) {
		if period > 0 {
			d.periods[kind] = period
		}
	}
}

// Driver runs at most one kind at a time. Values of every kind are kept
// between activations.
type Driver struct {
	clock   clockwork.Clock
	rng     *rand.Rand
	periods map[Kind]time.Duration
	notify  Observer

	mu     sync.Mutex // guards active
	active *Activation

	frameMu   sync.Mutex // guards animators
	animators map[Kind]animator
}

// NewDriver returns an idle driver. notify may be nil.
func NewDriver(notify Observer, opts ...Option) *Driver {
	d := &Driver{
		clock: clockwork.NewRealClock(),
		periods: map[Kind]time.Duration{
			KindPosition: PositionPeriod,
			KindSize:     SizePeriod,
			KindAngle:    AnglePeriod,
		},
		notify: notify,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.notify == nil {
		d.notify = func(Frame) {}
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d.animators = make(map[Kind]animator, len(Kinds))
	for _, k := range Kinds {
		d.animators[k] = newAnimator(k, d.rng)
	}
	return d
}

// Activation is the handle for one activated kind.
type Activation struct {
	id     uuid.UUID
	kind   Kind
	loop   *schedule.Loop
	driver *Driver
}

// ID identifies this activation.
func (a *Activation) ID() uuid.UUID { return a.id }

// Kind is the animated kind.
func (a *Activation) Kind() Kind { return a.kind }

// Close cancels this activation if it is still the active one. Closing a
// superseded activation does nothing; its schedule was already released.
func (a *Activation) Close() {
	d := a.driver
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == a {
		a.loop.Cancel()
		d.active = nil
	}
}

// Activate starts animating kind. A different active kind is fully
// cancelled first. Activating the kind that is already active returns the
// existing activation.
func (d *Driver) Activate(kind Kind) (*Activation, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active != nil {
		if d.active.kind == kind {
			return d.active, nil
		}
		d.active.loop.Cancel()
		d.active = nil
	}

	a := &Activation{id: uuid.New(), kind: kind, driver: d}
	a.loop = schedule.Every(d.clock, d.periods[kind], func() bool {
		d.advance(kind)
		return true
	})
	d.active = a
	return a, nil
}

// Deactivate stops the active kind, keeping its last value. It reports
// whether anything was active.
func (d *Driver) Deactivate() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active == nil {
		return false
	}
	d.active.loop.Cancel()
	d.active = nil
	return true
}

// Active returns the active kind, if any.
func (d *Driver) Active() (Kind, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return "", false
	}
	return d.active.kind, true
}

// Period returns the tick period of kind.
func (d *Driver) Period(kind Kind) time.Duration {
	return d.periods[kind]
}

// Frame returns the current value of kind.
func (d *Driver) Frame(kind Kind) Frame {
	d.frameMu.Lock()
	defer d.frameMu.Unlock()
	if an, ok := d.animators[kind]; ok {
		return an.frame()
	}
	return Frame{Kind: kind}
}

// Frames returns the current value of every kind.
func (d *Driver) Frames() []Frame {
	d.frameMu.Lock()
	defer d.frameMu.Unlock()
	out := make([]Frame, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, d.animators[k].frame())
	}
	return out
}

func (d *Driver) advance(kind Kind) {
	d.frameMu.Lock()
	defer d.frameMu.Unlock()
	an := d.animators[kind]
	an.step()
	d.notify(an.frame())
}
