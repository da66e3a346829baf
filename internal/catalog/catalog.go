// Package catalog loads the static exercise and trainer descriptors.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/trainer"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

var (
	ErrUnknownRoutine = errors.New("unknown routine")
	ErrUnknownTrainer = errors.New("unknown trainer")
)

// Catalog is the immutable set of routines and trainers served at startup.
type Catalog struct {
	Routines []models.Routine   `yaml:"routines" json:"routines"`
	Trainers models.TrainerPage `yaml:"trainers" json:"trainers"`
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	c, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog from a YAML file. An empty path yields Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.Routines) == 0 && len(c.Trainers.Trainers) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	slugs := make(map[string]bool, len(c.Routines))
	for _, r := range c.Routines {
		if r.Slug == "" {
			return fmt.Errorf("routine %q: slug is required", r.Title)
		}
		if slugs[r.Slug] {
			return fmt.Errorf("duplicate routine slug %q", r.Slug)
		}
		slugs[r.Slug] = true

		ids := make(map[int]bool, len(r.Exercises))
		for _, e := range r.Exercises {
			if ids[e.ID] {
				return fmt.Errorf("routine %s: duplicate exercise id %d", r.Slug, e.ID)
			}
			ids[e.ID] = true
			if e.Title == "" {
				return fmt.Errorf("routine %s: exercise %d: title is required", r.Slug, e.ID)
			}
			if e.DurationSeconds <= 0 {
				return fmt.Errorf("routine %s: exercise %d: duration must be positive", r.Slug, e.ID)
			}
		}
	}

	ids := make(map[string]bool, len(c.Trainers.Trainers))
	for _, t := range c.Trainers.Trainers {
		if t.ID == "" {
			return fmt.Errorf("trainer %q: id is required", t.Title)
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate trainer id %q", t.ID)
		}
		ids[t.ID] = true
		if _, err := trainer.ParseKind(string(t.Kind)); err != nil {
			return fmt.Errorf("trainer %s: %w", t.ID, err)
		}
	}
	return nil
}

// Routine returns the routine with the given slug.
func (c *Catalog) Routine(slug string) (models.Routine, error) {
	for _, r := range c.Routines {
		if r.Slug == slug {
			return r, nil
		}
	}
	return models.Routine{}, fmt.Errorf("%w: %q", ErrUnknownRoutine, slug)
}

// Trainer returns the trainer with the given id.
func (c *Catalog) Trainer(id string) (models.Trainer, error) {
	for _, t := range c.Trainers.Trainers {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trainer{}, fmt.Errorf("%w: %q", ErrUnknownTrainer, id)
}
