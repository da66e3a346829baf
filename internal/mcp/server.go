package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ctl Controller, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("eyerest", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("eyerest eye-exercise server. List routines and trainers, start or stop an exercise countdown, and switch the visual trainer. Only one exercise per routine can run at a time."),
	)

	h := &handlers{ctl: ctl, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListRoutines, Handler: h.listRoutines},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolStartExercise, Handler: h.startExercise},
		server.ServerTool{Tool: toolStopExercise, Handler: h.stopExercise},
		server.ServerTool{Tool: toolListTrainers, Handler: h.listTrainers},
		server.ServerTool{Tool: toolGetTrainerState, Handler: h.getTrainerState},
		server.ServerTool{Tool: toolSelectTrainer, Handler: h.selectTrainer},
		server.ServerTool{Tool: toolDeselectTrainer, Handler: h.deselectTrainer},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
		server.ServerResource{Resource: resSessions, Handler: h.sessions},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ctl Controller
	log *slog.Logger
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"eyerest://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Every routine with its exercises and tips, plus the trainer page"),
	mcp.WithMIMEType("application/json"),
)

var resSessions = mcp.NewResource(
	"eyerest://sessions",
	"Live Sessions",
	mcp.WithResourceDescription("Countdown state of every routine and the active trainer"),
	mcp.WithMIMEType("application/json"),
)
