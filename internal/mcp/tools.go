package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("List every exercise routine with its exercises (id, title, description, duration in seconds) and tips."),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get the countdown state of a routine: the active exercise (if any), remaining seconds and whether it is running."),
	mcp.WithString("routine", mcp.Required(), mcp.Description("Routine slug (e.g. relaxation, astigmatism)")),
)

var toolStartExercise = mcp.NewTool("start_exercise",
	mcp.WithDescription("Start the countdown for one exercise. Fails while another exercise of the same routine is running."),
	mcp.WithString("routine", mcp.Required(), mcp.Description("Routine slug")),
	mcp.WithNumber("exercise", mcp.Required(), mcp.Description("Exercise id within the routine")),
)

var toolStopExercise = mcp.NewTool("stop_exercise",
	mcp.WithDescription("Stop the running exercise of a routine. Does nothing when no exercise is running."),
	mcp.WithString("routine", mcp.Required(), mcp.Description("Routine slug")),
)

var toolListTrainers = mcp.NewTool("list_trainers",
	mcp.WithDescription("List the visual trainers (moving dot, focus control, line rotation) and their tips."),
)

var toolGetTrainerState = mcp.NewTool("get_trainer_state",
	mcp.WithDescription("Get the selected trainer and the latest animation frame of every trainer kind."),
)

var toolSelectTrainer = mcp.NewTool("select_trainer",
	mcp.WithDescription("Select a trainer and start its animation. Any previously selected trainer is stopped first."),
	mcp.WithString("trainer", mcp.Required(), mcp.Description("Trainer id (e.g. moving-dot, focus-control, line-rotation)")),
)

var toolDeselectTrainer = mcp.NewTool("deselect_trainer",
	mcp.WithDescription("Stop the active trainer animation. The last frame is kept."),
)

// --- Tool handlers ---

func (h *handlers) listRoutines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routines, err := h.ctl.Routines(ctx)
	if err != nil {
		h.log.Error("mcp list_routines", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(routines)
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routine, err := req.RequireString("routine")
	if err != nil {
		return mcp.NewToolResultError("routine parameter is required"), nil
	}

	st, err := h.ctl.Session(ctx, routine)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func (h *handlers) startExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routine, err := req.RequireString("routine")
	if err != nil {
		return mcp.NewToolResultError("routine parameter is required"), nil
	}
	exercise, err := req.RequireInt("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	st, err := h.ctl.StartExercise(ctx, routine, exercise)
	if err != nil {
		h.log.Info("mcp start_exercise rejected", "routine", routine, "exercise", exercise, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func (h *handlers) stopExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routine, err := req.RequireString("routine")
	if err != nil {
		return mcp.NewToolResultError("routine parameter is required"), nil
	}

	st, err := h.ctl.StopExercise(ctx, routine)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func (h *handlers) listTrainers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := h.ctl.Trainers(ctx)
	if err != nil {
		h.log.Error("mcp list_trainers", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(page)
}

func (h *handlers) getTrainerState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.ctl.TrainerState(ctx)
	if err != nil {
		h.log.Error("mcp get_trainer_state", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(st)
}

func (h *handlers) selectTrainer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("trainer")
	if err != nil {
		return mcp.NewToolResultError("trainer parameter is required"), nil
	}

	st, err := h.ctl.SelectTrainer(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func (h *handlers) deselectTrainer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.ctl.DeselectTrainer(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
