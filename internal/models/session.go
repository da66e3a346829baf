package models

import (
	"time"

	"github.com/claude/eyerest/internal/countdown"
	"github.com/claude/eyerest/internal/trainer"
)

// BoardState is the observable countdown state of one routine page.
type BoardState struct {
	Routine        string `json:"routine"`
	SessionID      string `json:"session_id,omitempty"`
	ActiveExercise *int   `json:"active_exercise"`
	Remaining      int    `json:"remaining_seconds"`
	Running        bool   `json:"running"`
}

// DeckState is the observable state of the trainers page.
type DeckState struct {
	ActiveTrainer *string         `json:"active_trainer"`
	ActivationID  string          `json:"activation_id,omitempty"`
	Frames        []trainer.Frame `json:"frames"`
}

// EventType distinguishes render events.
type EventType string

const (
	EventCountdown EventType = "countdown"
	EventTrainer   EventType = "trainer"
)

// Event is pushed to renderers on every state change.
type Event struct {
	Type EventType `json:"type"`
	Time time.Time `json:"time"`

	// Countdown fields.
	Routine    string           `json:"routine,omitempty"`
	ExerciseID int              `json:"exercise_id,omitempty"`
	SessionID  string           `json:"session_id,omitempty"`
	Signal     countdown.Signal `json:"signal,omitempty"`
	Remaining  int              `json:"remaining_seconds"`
	Running    bool             `json:"running"`

	// Trainer fields.
	TrainerID string         `json:"trainer_id,omitempty"`
	Selected  *bool          `json:"selected,omitempty"`
	Frame     *trainer.Frame `json:"frame,omitempty"`
}
