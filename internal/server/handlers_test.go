package server

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/claude/eyerest/internal/catalog"
	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/session"
	"github.com/jonboulle/clockwork"
)

const testCatalog = `
routines:
  - slug: quick
    title: Quick
    exercises:
      - {id: 1, title: Blink, duration: 3}
      - {id: 2, title: Palming, duration: 5}
trainers:
  trainers:
    - {id: moving-dot, title: Dot, kind: position}
    - {id: line-rotation, title: Lines, kind: angle}
`

func newTestServer(t *testing.T, apiKey string) (*Server, *session.Manager, *clockwork.FakeClock) {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatal(err)
	}
	fc := clockwork.NewFakeClock()
	log := slog.New(slog.DiscardHandler)
	m := session.NewManager(cat, session.Config{
		Clock: fc,
		Rand:  rand.New(rand.NewPCG(1, 2)),
		Log:   log,
	})
	t.Cleanup(m.Close)
	return New(m, apiKey, log), m, fc
}

func do(t *testing.T, h http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return v
}

// TestListRoutines verifies the routine listing is served from the catalog.
func TestListRoutines(t *testing.T) {
	s, _, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/v1/routines", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	routines := decode[[]models.Routine](t, rec)
	if len(routines) != 1 || routines[0].Slug != "quick" {
		t.Fatalf("routines = %+v", routines)
	}
	if len(routines[0].Exercises) != 2 {
		t.Errorf("exercises = %d, want 2", len(routines[0].Exercises))
	}
}

// TestGetRoutineUnknown verifies unknown routines map to 404.
func TestGetRoutineUnknown(t *testing.T) {
	s, _, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/v1/routines/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/api/v1/routines/nope/session", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("session status = %d, want 404", rec.Code)
	}
}

// TestStartStopExercise walks one exercise through start, a rejected second
// start, and stop.
func TestStartStopExercise(t *testing.T) {
	s, _, _ := newTestServer(t, "")

	rec := do(t, s, http.MethodPost, "/api/v1/routines/quick/exercises/2/start", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", rec.Code, rec.Body)
	}
	st := decode[models.BoardState](t, rec)
	if !st.Running || st.Remaining != 5 {
		t.Errorf("state = %+v, want running with 5s", st)
	}
	if st.ActiveExercise == nil || *st.ActiveExercise != 2 {
		t.Errorf("active exercise = %v, want 2", st.ActiveExercise)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/routines/quick/exercises/1/start", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("second start status = %d, want 409", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/routines/quick/session", nil)
	if got := decode[models.BoardState](t, rec); !got.Running || *got.ActiveExercise != 2 {
		t.Errorf("session = %+v, want exercise 2 running", got)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/routines/quick/stop", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stop status = %d", rec.Code)
	}
	if got := decode[models.BoardState](t, rec); got.Running || got.ActiveExercise != nil {
		t.Errorf("after stop = %+v, want idle", got)
	}
}

// TestStartExerciseBadInput verifies malformed and unknown exercise ids.
func TestStartExerciseBadInput(t *testing.T) {
	s, _, _ := newTestServer(t, "")
	if rec := do(t, s, http.MethodPost, "/api/v1/routines/quick/exercises/abc/start", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/routines/quick/exercises/9/start", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

// TestTrainerSelection verifies select, state and deselect of trainers.
func TestTrainerSelection(t *testing.T) {
	s, _, _ := newTestServer(t, "")

	rec := do(t, s, http.MethodGet, "/api/v1/trainers", nil)
	page := decode[models.TrainerPage](t, rec)
	if len(page.Trainers) != 2 {
		t.Fatalf("trainers = %d, want 2", len(page.Trainers))
	}

	rec = do(t, s, http.MethodPost, "/api/v1/trainers/line-rotation/select", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d, body %s", rec.Code, rec.Body)
	}
	st := decode[models.DeckState](t, rec)
	if st.ActiveTrainer == nil || *st.ActiveTrainer != "line-rotation" {
		t.Errorf("active trainer = %v, want line-rotation", st.ActiveTrainer)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/trainers/active", nil)
	if got := decode[models.DeckState](t, rec); got.ActiveTrainer == nil {
		t.Error("active trainer missing from state")
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/trainers/nope/select", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown trainer status = %d, want 404", rec.Code)
	}

	rec = do(t, s, http.MethodDelete, "/api/v1/trainers/active", nil)
	if got := decode[models.DeckState](t, rec); got.ActiveTrainer != nil {
		t.Errorf("after deselect active = %v, want nil", *got.ActiveTrainer)
	}
}

// TestControlRoutesRequireKey verifies the API key guards only mutating routes.
func TestControlRoutesRequireKey(t *testing.T) {
	s, _, _ := newTestServer(t, "secret")

	if rec := do(t, s, http.MethodGet, "/api/v1/routines", nil); rec.Code != http.StatusOK {
		t.Errorf("read status = %d, want 200", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/routines/quick/exercises/1/start", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no key status = %d, want 401", rec.Code)
	}
	bad := http.Header{"X-Api-Key": {"wrong"}}
	if rec := do(t, s, http.MethodPost, "/api/v1/trainers/moving-dot/select", bad); rec.Code != http.StatusForbidden {
		t.Errorf("bad key status = %d, want 403", rec.Code)
	}
	good := http.Header{"X-Api-Key": {"secret"}}
	if rec := do(t, s, http.MethodPost, "/api/v1/routines/quick/exercises/1/start", good); rec.Code != http.StatusOK {
		t.Errorf("good key status = %d, want 200", rec.Code)
	}
}

// TestHealthAndMetrics verifies the unauthenticated operational endpoints.
func TestHealthAndMetrics(t *testing.T) {
	s, _, _ := newTestServer(t, "secret")

	rec := do(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	do(t, s, http.MethodPost, "/api/v1/routines/quick/exercises/1/start", http.Header{"X-Api-Key": {"secret"}})
	rec = do(t, s, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "eyerest_countdown_sessions_started_total") {
		t.Error("metrics output missing eyerest_countdown_sessions_started_total")
	}
}

// TestFrontendFallback verifies static files are served and unknown paths
// fall back to index.html.
func TestFrontendFallback(t *testing.T) {
	s, _, _ := newTestServer(t, "")
	s.SetFrontend(fstest.MapFS{
		"index.html": {Data: []byte("<html>eyerest</html>")},
		"app.js":     {Data: []byte("console.log(1)")},
	})

	rec := do(t, s, http.MethodGet, "/app.js", nil)
	if !strings.Contains(rec.Body.String(), "console.log") {
		t.Errorf("app.js body = %q", rec.Body.String())
	}
	rec = do(t, s, http.MethodGet, "/trainers/moving-dot", nil)
	if !strings.Contains(rec.Body.String(), "eyerest") {
		t.Errorf("fallback body = %q", rec.Body.String())
	}
}
