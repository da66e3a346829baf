// Package session applies the page-level policies around the countdown and
// trainer drivers (one running exercise per routine, one selected trainer)
// and fans their state changes out to renderers.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/claude/eyerest/internal/catalog"
	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/trainer"
	"github.com/jonboulle/clockwork"
)

var (
	ErrSessionActive   = errors.New("another exercise is already running")
	ErrUnknownRoutine  = errors.New("unknown routine")
	ErrUnknownExercise = errors.New("unknown exercise")
	ErrUnknownTrainer  = errors.New("unknown trainer")
	ErrClosed          = errors.New("session manager closed")
)

// Config tunes timing and fan-out. Zero values select the defaults.
type Config struct {
	Clock             clockwork.Clock
	CountdownInterval time.Duration
	TrainerPeriods    map[trainer.Kind]time.Duration
	Rand              *rand.Rand
	HubBuffer         int
	Log               *slog.Logger
}

// Manager owns every board, the trainer deck and the render hub.
type Manager struct {
	catalog *catalog.Catalog
	boards  map[string]*Board
	deck    *Deck
	hub     *Hub
	log     *slog.Logger
}

// NewManager builds one board per routine and a deck for the trainers.
func NewManager(cat *catalog.Catalog, cfg Config) *Manager {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "session")
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	m := &Manager{
		catalog: cat,
		boards:  make(map[string]*Board, len(cat.Routines)),
		hub:     NewHub(cfg.HubBuffer),
		log:     log,
	}
	for _, r := range cat.Routines {
		m.boards[r.Slug] = newBoard(r, clock, cfg.CountdownInterval, m.hub, log)
	}

	var opts []trainer.Option
	for kind, period := range cfg.TrainerPeriods {
		opts = append(opts, trainer.WithPeriod(kind, period))
	}
	if cfg.Rand != nil {
		opts = append(opts, trainer.WithRand(cfg.Rand))
	}
	m.deck = newDeck(cat.Trainers, clock, m.hub, log, opts...)
	return m
}

// Hub returns the render event hub.
func (m *Manager) Hub() *Hub {
	return m.hub
}

// Catalog returns the descriptors the manager was built from.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Board returns the board of a routine.
func (m *Manager) Board(slug string) (*Board, error) {
	b, ok := m.boards[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoutine, slug)
	}
	return b, nil
}

// Deck returns the trainers page.
func (m *Manager) Deck() *Deck {
	return m.deck
}

// Close tears down every running countdown and trainer.
func (m *Manager) Close() {
	for _, b := range m.boards {
		b.Close()
	}
	m.deck.Close()
	m.log.Info("all sessions closed")
}

// The methods below let the manager serve as a transport-agnostic
// controller for the HTTP and MCP surfaces.

// Routines lists every routine.
func (m *Manager) Routines(_ context.Context) ([]models.Routine, error) {
	return m.catalog.Routines, nil
}

// Session returns the state of a routine's board.
func (m *Manager) Session(_ context.Context, routine string) (models.BoardState, error) {
	b, err := m.Board(routine)
	if err != nil {
		return models.BoardState{}, err
	}
	return b.State(), nil
}

// StartExercise starts an exercise on its routine's board.
func (m *Manager) StartExercise(_ context.Context, routine string, exerciseID int) (models.BoardState, error) {
	b, err := m.Board(routine)
	if err != nil {
		return models.BoardState{}, err
	}
	return b.Start(exerciseID)
}

// StopExercise stops whatever is running on a routine's board.
func (m *Manager) StopExercise(_ context.Context, routine string) (models.BoardState, error) {
	b, err := m.Board(routine)
	if err != nil {
		return models.BoardState{}, err
	}
	return b.Stop(), nil
}

// Trainers returns the trainer page.
func (m *Manager) Trainers(_ context.Context) (models.TrainerPage, error) {
	return m.deck.Page(), nil
}

// TrainerState returns the deck state.
func (m *Manager) TrainerState(_ context.Context) (models.DeckState, error) {
	return m.deck.State(), nil
}

// SelectTrainer selects a trainer.
func (m *Manager) SelectTrainer(_ context.Context, id string) (models.DeckState, error) {
	return m.deck.Select(id)
}

// DeselectTrainer closes the active trainer.
func (m *Manager) DeselectTrainer(_ context.Context) (models.DeckState, error) {
	return m.deck.Deselect(), nil
}
