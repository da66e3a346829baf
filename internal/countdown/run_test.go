package countdown

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type event struct {
	signal Signal
	snap   Snapshot
}

func channelObserver() (Observer, chan event) {
	ch := make(chan event, 256)
	return func(s Signal, snap Snapshot) { ch <- event{s, snap} }, ch
}

func next(t *testing.T, ch <-chan event) event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for countdown event")
		return event{}
	}
}

// TestRunNinetySeconds drives a 90-second session one real second at a time
// and checks the remaining sequence and final state.
func TestRunNinetySeconds(t *testing.T) {
	fc := clockwork.NewFakeClock()
	notify, ch := channelObserver()

	run, err := Start(Config{Clock: fc, Interval: time.Second}, 90, notify)
	if err != nil {
		t.Fatal(err)
	}
	defer run.Stop()

	if ev := next(t, ch); ev.signal != SignalStarted || ev.snap.Remaining != 90 {
		t.Fatalf("first event = %+v, want started at 90", ev)
	}

	for want := 89; want >= 0; want-- {
		fc.Advance(time.Second)
		ev := next(t, ch)
		if ev.snap.Remaining != want {
			t.Fatalf("remaining = %d, want %d", ev.snap.Remaining, want)
		}
		if want > 0 && ev.signal != SignalTick {
			t.Fatalf("signal at %d = %s, want tick", want, ev.signal)
		}
		if want == 0 && ev.signal != SignalExpired {
			t.Fatalf("final signal = %s, want expired", ev.signal)
		}
	}

	select {
	case <-run.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("schedule not released after expiry")
	}
	if run.Running() {
		t.Error("run still running after expiry")
	}
	if run.Stop() {
		t.Error("Stop after expiry reported a stop")
	}
}

// TestRunStopCancelsSchedule verifies that after Stop no scheduled tick is
// processed, regardless of elapsed time.
func TestRunStopCancelsSchedule(t *testing.T) {
	fc := clockwork.NewFakeClock()
	notify, ch := channelObserver()

	run, err := Start(Config{Clock: fc, Interval: time.Second}, 60, notify)
	if err != nil {
		t.Fatal(err)
	}
	next(t, ch) // started

	for i := 0; i < 5; i++ {
		fc.Advance(time.Second)
		next(t, ch)
	}

	if !run.Stop() {
		t.Fatal("Stop reported idle")
	}
	if ev := next(t, ch); ev.signal != SignalStopped || ev.snap.Remaining != 0 {
		t.Fatalf("stop event = %+v, want stopped at 0", ev)
	}

	fc.Advance(10 * time.Minute)
	select {
	case ev := <-ch:
		t.Fatalf("event after stop: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}

	if run.Stop() {
		t.Error("second Stop reported a stop")
	}
}

// TestRunRejectsInvalidDuration verifies no schedule is created for bad input.
func TestRunRejectsInvalidDuration(t *testing.T) {
	if _, err := Start(Config{Clock: clockwork.NewFakeClock()}, 0, nil); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

// TestRunIDsUnique verifies each session gets its own id.
func TestRunIDsUnique(t *testing.T) {
	fc := clockwork.NewFakeClock()
	a, err := Start(Config{Clock: fc}, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Stop()
	b, err := Start(Config{Clock: fc}, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Stop()

	if a.ID() == b.ID() {
		t.Error("two runs share an id")
	}
}

// TestRunUsesGivenID verifies a caller-chosen id is kept.
func TestRunUsesGivenID(t *testing.T) {
	id := uuid.New()
	r, err := Start(Config{Clock: clockwork.NewFakeClock(), ID: id}, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Stop()
	if r.ID() != id {
		t.Errorf("ID = %s, want %s", r.ID(), id)
	}
}
