package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/claude/eyerest/internal/catalog"
	"github.com/claude/eyerest/internal/countdown"
	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/session"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	catalogPath := flag.String("catalog", "", "path to catalog YAML (default: built-in catalog)")
	routine := flag.String("routine", "relaxation", "routine slug")
	exercise := flag.Int("exercise", 0, "exercise id to run")
	trainerID := flag.String("trainer", "", "trainer id to run instead of an exercise")
	list := flag.Bool("list", false, "list routines and trainers and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("eyerest-run", Version)
		return
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	if *list {
		printCatalog(cat)
		return
	}

	if (*exercise == 0) == (*trainerID == "") {
		fmt.Fprintf(os.Stderr, "Usage: eyerest-run [-routine SLUG] -exercise ID | -trainer ID | -list\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cat, *routine, *exercise, *trainerID, log); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run drives one exercise or trainer and renders its events until the
// countdown expires or the user interrupts.
func run(cat *catalog.Catalog, routine string, exercise int, trainerID string, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := session.NewManager(cat, session.Config{Log: log})
	defer m.Close()

	sub := m.Hub().Subscribe()
	defer sub.Close()

	if trainerID != "" {
		tr, err := cat.Trainer(trainerID)
		if err != nil {
			return err
		}
		if _, err := m.SelectTrainer(ctx, trainerID); err != nil {
			return err
		}
		fmt.Printf("%s (Ctrl-C to stop)\n", tr.Title)
	} else {
		r, err := cat.Routine(routine)
		if err != nil {
			return err
		}
		ex, ok := r.Exercise(exercise)
		if !ok {
			return fmt.Errorf("%w: %d in %s", session.ErrUnknownExercise, exercise, routine)
		}
		if _, err := m.StartExercise(ctx, routine, exercise); err != nil {
			return err
		}
		fmt.Printf("%s: %s\n%s\n", r.Title, ex.Title, ex.Description)
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nstopped")
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return errors.New("event stream closed")
			}
			render(ev)
			if ev.Type == models.EventCountdown && ev.Signal == countdown.SignalExpired {
				return nil
			}
		}
	}
}

func render(ev models.Event) {
	switch ev.Type {
	case models.EventCountdown:
		switch ev.Signal {
		case countdown.SignalExpired:
			fmt.Print("\r00:00  done\n")
		case countdown.SignalStopped:
			fmt.Print("\rstopped     \n")
		default:
			fmt.Printf("\r%s      ", formatClock(ev.Remaining))
		}
	case models.EventTrainer:
		f := ev.Frame
		if f == nil {
			return
		}
		switch {
		case f.Position != nil:
			fmt.Printf("\rdot at (%5.1f%%, %5.1f%%)   ", f.Position.X, f.Position.Y)
		case f.Size != nil:
			fmt.Printf("\rcircle size %3dpx       ", *f.Size)
		case f.Angle != nil:
			fmt.Printf("\rlines at %3d°           ", *f.Angle)
		}
	}
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func printCatalog(cat *catalog.Catalog) {
	for _, r := range cat.Routines {
		fmt.Printf("%s  %s\n", r.Slug, r.Title)
		for _, ex := range r.Exercises {
			fmt.Printf("  %d  %-40s %s\n", ex.ID, ex.Title, formatClock(ex.DurationSeconds))
		}
	}
	fmt.Println("trainers")
	for _, tr := range cat.Trainers.Trainers {
		fmt.Printf("  %-15s %-20s %s\n", tr.ID, tr.Title, tr.Kind)
	}
}
