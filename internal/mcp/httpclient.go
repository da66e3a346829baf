package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/eyerest/internal/models"
	"github.com/claude/eyerest/internal/session"
)

// HTTPClient implements Controller by calling the eyerest REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the sessions live on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Controller.
var _ Controller = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is sent on every request when non-empty.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the REST API. It unwraps to the
// matching session error so callers can use errors.Is across transports.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("httpclient: %s returned %d: %s", e.Path, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusConflict:
		return session.ErrSessionActive
	case http.StatusServiceUnavailable:
		return session.ErrClosed
	case http.StatusNotFound:
		for _, target := range []error{session.ErrUnknownRoutine, session.ErrUnknownExercise, session.ErrUnknownTrainer} {
			if strings.HasPrefix(e.Message, target.Error()) {
				return target
			}
		}
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Path: path, Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func routinePath(routine string) string {
	return "/api/v1/routines/" + url.PathEscape(routine)
}

func (c *HTTPClient) Routines(ctx context.Context) ([]models.Routine, error) {
	var routines []models.Routine
	if err := c.do(ctx, http.MethodGet, "/api/v1/routines", &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (c *HTTPClient) Session(ctx context.Context, routine string) (models.BoardState, error) {
	var st models.BoardState
	err := c.do(ctx, http.MethodGet, routinePath(routine)+"/session", &st)
	return st, err
}

func (c *HTTPClient) StartExercise(ctx context.Context, routine string, exerciseID int) (models.BoardState, error) {
	var st models.BoardState
	path := routinePath(routine) + "/exercises/" + strconv.Itoa(exerciseID) + "/start"
	err := c.do(ctx, http.MethodPost, path, &st)
	return st, err
}

func (c *HTTPClient) StopExercise(ctx context.Context, routine string) (models.BoardState, error) {
	var st models.BoardState
	err := c.do(ctx, http.MethodPost, routinePath(routine)+"/stop", &st)
	return st, err
}

func (c *HTTPClient) Trainers(ctx context.Context) (models.TrainerPage, error) {
	var page models.TrainerPage
	err := c.do(ctx, http.MethodGet, "/api/v1/trainers", &page)
	return page, err
}

func (c *HTTPClient) TrainerState(ctx context.Context) (models.DeckState, error) {
	var st models.DeckState
	err := c.do(ctx, http.MethodGet, "/api/v1/trainers/active", &st)
	return st, err
}

func (c *HTTPClient) SelectTrainer(ctx context.Context, id string) (models.DeckState, error) {
	var st models.DeckState
	err := c.do(ctx, http.MethodPost, "/api/v1/trainers/"+url.PathEscape(id)+"/select", &st)
	return st, err
}

func (c *HTTPClient) DeselectTrainer(ctx context.Context) (models.DeckState, error) {
	var st models.DeckState
	err := c.do(ctx, http.MethodDelete, "/api/v1/trainers/active", &st)
	return st, err
}

