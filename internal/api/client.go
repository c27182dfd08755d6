package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// Client is an HTTP client for the game API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Error is an error response from the API. The server's message is
// surfaced verbatim to the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errorEnvelope is the server's error body shape
type errorEnvelope struct {
	Error string `json:"error"`
}

// do performs an HTTP request and decodes the JSON response
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != "" {
			return &Error{Status: resp.StatusCode, Message: envelope.Error}
		}
		return &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("request failed (%d)", resp.StatusCode),
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Register creates a player, or returns the existing one for the same phone
func (c *Client) Register(ctx context.Context, name, phone string) (*model.Player, error) {
	req := map[string]string{"name": name, "phone": phone}
	var player model.Player
	if err := c.post(ctx, "/api/register/", req, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// GetPlayer fetches a player profile by id
func (c *Client) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := c.get(ctx, fmt.Sprintf("/api/player/%s/", id), &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// GetBoard fetches a player's board snapshot
func (c *Client) GetBoard(ctx context.Context, playerID model.PlayerID) (model.Board, error) {
	var board model.Board
	if err := c.get(ctx, fmt.Sprintf("/api/board/%s/", playerID), &board); err != nil {
		return nil, err
	}
	return board, nil
}

// GetGameState fetches the global game status
func (c *Client) GetGameState(ctx context.Context) (*model.GameStatus, error) {
	var status model.GameStatus
	if err := c.get(ctx, "/api/game-state/", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetWinners fetches the winners collection
func (c *Client) GetWinners(ctx context.Context) ([]model.Winner, error) {
	var winners []model.Winner
	if err := c.get(ctx, "/api/winners/", &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// GetTasks fetches the global task catalog
func (c *Client) GetTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/api/tasks/", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetPlayerScans fetches the scans made by a player
func (c *Client) GetPlayerScans(ctx context.Context, playerID model.PlayerID) ([]model.ScanRecord, error) {
	var scans []model.ScanRecord
	if err := c.get(ctx, fmt.Sprintf("/api/player/%s/scans/", playerID), &scans); err != nil {
		return nil, err
	}
	return scans, nil
}

// SubmitScan submits a scanned target against a chosen task
func (c *Client) SubmitScan(ctx context.Context, scannerID, targetID model.PlayerID, taskID int) (*model.ScanResult, error) {
	req := map[string]any{
		"scanner_id": scannerID,
		"target_id":  targetID,
		"task_id":    taskID,
	}
	var result model.ScanResult
	if err := c.post(ctx, "/api/scan/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
