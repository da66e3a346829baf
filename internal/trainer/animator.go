package trainer

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Kind selects which visual parameter a trainer animates.
type Kind string

const (
	KindPosition Kind = "position"
	KindSize     Kind = "size"
	KindAngle    Kind = "angle"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindPosition, KindSize, KindAngle}

// Animation constants.
const (
	PositionPeriod = 2000 * time.Millisecond
	SizePeriod     = 1500 * time.Millisecond
	AnglePeriod    = 1000 * time.Millisecond

	PositionMin = 10.0
	PositionMax = 90.0

	SizeLarge = 100
	SizeSmall = 30

	AngleStep = 15
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindPosition, KindSize, KindAngle:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Position is a point in percent of the container, one value per axis.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is the current animated value of one kind. Only the field that
// belongs to Kind is meaningful.
type Frame struct {
	Kind     Kind      `json:"kind"`
	Ticks    int       `json:"ticks"`
	Position *Position `json:"position,omitempty"`
	Size     *int      `json:"size,omitempty"`
	Angle    *int      `json:"angle,omitempty"`
}

// animator holds the value for one kind and knows how to advance it.
type animator interface {
	step()
	frame() Frame
}

func newAnimator(kind Kind, rng *rand.Rand) animator {
	switch kind {
	case KindPosition:
		return &positionAnimator{rng: rng, pos: Position{X: 50, Y: 50}}
	case KindSize:
		return &sizeAnimator{size: SizeLarge}
	default:
		return &angleAnimator{}
	}
}

type positionAnimator struct {
	rng   *rand.Rand
	pos   Position
	ticks int
}

func (a *positionAnimator) step() {
	span := PositionMax - PositionMin
	a.pos = Position{
		X: PositionMin + a.rng.Float64()*span,
		Y: PositionMin + a.rng.Float64()*span,
	}
	a.ticks++
}

func (a *positionAnimator) frame() Frame {
	p := a.pos
	return Frame{Kind: KindPosition, Ticks: a.ticks, Position: &p}
}

type sizeAnimator struct {
	size  int
	ticks int
}

func (a *sizeAnimator) step() {
	if a.size == SizeLarge {
		a.size = SizeSmall
	} else {
		a.size = SizeLarge
	}
	a.ticks++
}

func (a *sizeAnimator) frame() Frame {
	s := a.size
	return Frame{Kind: KindSize, Ticks: a.ticks, Size: &s}
}

type angleAnimator struct {
	angle int
	ticks int
}

func (a *angleAnimator) step() {
	a.angle = (a.angle + AngleStep) % 360
	a.ticks++
}

func (a *angleAnimator) frame() Frame {
	deg := a.angle
	return Frame{Kind: KindAngle, Ticks: a.ticks, Angle: &deg}
}
