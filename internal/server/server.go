package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/eyerest/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	sessions *session.Manager
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the control routes open.
func New(sessions *session.Manager, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		sessions: sessions,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/routines", s.handleListRoutines)
		r.Get("/routines/{routine}", s.handleGetRoutine)
		r.Get("/routines/{routine}/session", s.handleGetSession)
		r.Get("/trainers", s.handleListTrainers)
		r.Get("/trainers/active", s.handleTrainerState)
		r.Get("/stream", s.handleStream)

		// Control endpoints (API key required when configured)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/routines/{routine}/exercises/{id}/start", s.handleStartExercise)
			r.Post("/routines/{routine}/stop", s.handleStopExercise)
			r.Post("/trainers/{id}/select", s.handleSelectTrainer)
			r.Delete("/trainers/active", s.handleDeselectTrainer)
		})
	})
}

// SetMCP mounts a streamable MCP endpoint at /mcp behind the API key guard.
func (s *Server) SetMCP(h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey)).Handle("/mcp", h)
}

// SetFrontend mounts a static front end.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
