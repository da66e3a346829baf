package mcp

import (
	"context"

	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/session"
)

// Controller abstracts the session layer for MCP tools. Both
// *session.Manager (local) and HTTPClient (remote via REST API) satisfy
// this interface.
type Controller interface {
	Routines(ctx context.Context) ([]models.Routine, error)
	Session(ctx context.Context, routine string) (models.BoardState, error)
	StartExercise(ctx context.Context, routine string, exerciseID int) (models.BoardState, error)
	StopExercise(ctx context.Context, routine string) (models.BoardState, error)
	Trainers(ctx context.Context) (models.TrainerPage, error)
	TrainerState(ctx context.Context) (models.DeckState, error)
	SelectTrainer(ctx context.Context, id string) (models.DeckState, error)
	DeselectTrainer(ctx context.Context) (models.DeckState, error)
}

// Compile-time check: *session.Manager satisfies Controller.
var _ Controller = (*session.Manager)(nil)
