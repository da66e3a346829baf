package models

import "github.com/claude/eyerest/internal/trainer"

// Exercise is one timed exercise card. Immutable once loaded.
type Exercise struct {
	ID              int    `yaml:"id" json:"id"`
	Title           string `yaml:"title" json:"title"`
	Description     string `yaml:"description" json:"description"`
	DurationSeconds int    `yaml:"duration" json:"duration_seconds"`
	Icon            string `yaml:"icon" json:"icon"`
}

// Routine is a page of exercises sharing one countdown.
type Routine struct {
	Slug      string     `yaml:"slug" json:"slug"`
	Title     string     `yaml:"title" json:"title"`
	Summary   string     `yaml:"summary" json:"summary"`
	Exercises []Exercise `yaml:"exercises" json:"exercises"`
	Tips      []string   `yaml:"tips" json:"tips,omitempty"`
}

// Exercise looks up an exercise by id.
func (r Routine) Exercise(id int) (Exercise, bool) {
	for _, e := range r.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

// Trainer is one animated trainer widget.
type Trainer struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description" json:"description"`
	Kind        trainer.Kind `yaml:"kind" json:"kind"`
	Icon        string       `yaml:"icon" json:"icon"`
}

// TrainerPage groups the trainers with their usage tips.
type TrainerPage struct {
	Title    string    `yaml:"title" json:"title"`
	Summary  string    `yaml:"summary" json:"summary"`
	Trainers []Trainer `yaml:"trainers" json:"trainers"`
	Tips     []string  `yaml:"tips" json:"tips,omitempty"`
}
