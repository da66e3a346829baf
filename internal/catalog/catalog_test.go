package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/eyerest/internal/trainer"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestDefaultCatalog verifies the shipped catalog has both routines and all
// three trainers with their observed durations.
func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	relax, err := c.Routine("relaxation")
	if err != nil {
		t.Fatal(err)
	}
	if len(relax.Exercises) != 5 {
		t.Errorf("relaxation exercises = %d, want 5", len(relax.Exercises))
	}
	palming, ok := relax.Exercise(1)
	if !ok || palming.DurationSeconds != 120 {
		t.Errorf("relaxation #1 = %+v, want 120s", palming)
	}

	astig, err := c.Routine("astigmatism")
	if err != nil {
		t.Fatal(err)
	}
	if len(astig.Exercises) != 6 {
		t.Errorf("astigmatism exercises = %d, want 6", len(astig.Exercises))
	}
	for _, r := range c.Routines {
		for _, e := range r.Exercises {
			if e.DurationSeconds < 45 || e.DurationSeconds > 120 {
				t.Errorf("%s #%d duration %d outside 45..120", r.Slug, e.ID, e.DurationSeconds)
			}
		}
		if len(r.Tips) == 0 {
			t.Errorf("%s has no tips", r.Slug)
		}
	}

	want := map[string]trainer.Kind{
		"moving-dot":    trainer.KindPosition,
		"focus-control": trainer.KindSize,
		"line-rotation": trainer.KindAngle,
	}
	for id, kind := range want {
		tr, err := c.Trainer(id)
		if err != nil {
			t.Errorf("Trainer(%s): %v", id, err)
			continue
		}
		if tr.Kind != kind {
			t.Errorf("%s kind = %s, want %s", id, tr.Kind, kind)
		}
	}
}

func TestLookupsUnknown(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Routine("yoga"); !errors.Is(err, ErrUnknownRoutine) {
		t.Errorf("Routine(yoga) = %v, want ErrUnknownRoutine", err)
	}
	if _, err := c.Trainer("spinner"); !errors.Is(err, ErrUnknownTrainer) {
		t.Errorf("Trainer(spinner) = %v, want ErrUnknownTrainer", err)
	}
	r, _ := c.Routine("relaxation")
	if _, ok := r.Exercise(99); ok {
		t.Error("Exercise(99) found")
	}
}

// TestLoadEmptyPathUsesDefault verifies an unset catalog path falls back to
// the embedded catalog.
func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Routines) != 2 {
		t.Errorf("routines = %d, want 2", len(c.Routines))
	}
}

func TestLoadFile(t *testing.T) {
	path := writeTemp(t, `
routines:
  - slug: quick
    title: Quick
    exercises:
      - id: 7
        title: Blink
        duration: 5
trainers:
  trainers:
    - id: spin
      title: Spin
      kind: angle
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r, err := c.Routine("quick")
	if err != nil {
		t.Fatal(err)
	}
	if e, ok := r.Exercise(7); !ok || e.DurationSeconds != 5 {
		t.Errorf("exercise 7 = %+v", e)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestValidation verifies malformed catalogs are rejected before any timer
// could be seeded from them.
func TestValidation(t *testing.T) {
	cases := map[string]string{
		"empty": `{}`,
		"zero duration": `
routines:
  - slug: a
    exercises:
      - {id: 1, title: X, duration: 0}`,
		"duplicate exercise": `
routines:
  - slug: a
    exercises:
      - {id: 1, title: X, duration: 10}
      - {id: 1, title: Y, duration: 10}`,
		"duplicate routine": `
routines:
  - slug: a
    exercises: [{id: 1, title: X, duration: 10}]
  - slug: a
    exercises: [{id: 1, title: X, duration: 10}]`,
		"missing slug": `
routines:
  - title: nameless
    exercises: [{id: 1, title: X, duration: 10}]`,
		"missing title": `
routines:
  - slug: a
    exercises: [{id: 1, duration: 10}]`,
		"unknown kind": `
trainers:
  trainers:
    - {id: t, title: T, kind: spiral}`,
		"duplicate trainer": `
trainers:
  trainers:
    - {id: t, title: T, kind: size}
    - {id: t, title: U, kind: angle}`,
		"bad yaml": `routines: [`,
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
