package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/eyerest/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) catalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	routines, err := h.ctl.Routines(ctx)
	if err != nil {
		return nil, err
	}
	trainers, err := h.ctl.Trainers(ctx)
	if err != nil {
		return nil, err
	}

	return jsonContents(req.Params.URI, map[string]any{
		"routines": routines,
		"trainers": trainers,
	})
}

func (h *handlers) sessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	routines, err := h.ctl.Routines(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]models.BoardState, 0, len(routines))
	for _, r := range routines {
		st, err := h.ctl.Session(ctx, r.Slug)
		if err != nil {
			h.log.Warn("sessions resource: board query failed", "routine", r.Slug, "error", err)
			continue
		}
		boards = append(boards, st)
	}

	deck, err := h.ctl.TrainerState(ctx)
	if err != nil {
		return nil, err
	}

	return jsonContents(req.Params.URI, map[string]any{
		"routines": boards,
		"trainer":  deck,
	})
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
