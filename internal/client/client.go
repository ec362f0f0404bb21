// Package client is a Go client for the GameBoard backend contract: game
// definition reads and the play-count notification. It is what operator
// tooling outside the server process uses to load a board and report a
// finished session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eduplay/gameboard/internal/jeopardy"
)

var ErrNotFound = errors.New("game not found")

// Game is the backend's game payload. GameJSON carries answers only on
// the privileged Play read.
type Game struct {
	ID          string                  `json:"id"`
	GameType    string                  `json:"game_type"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	PlayCount   int                     `json:"play_count"`
	CreatedAt   string                  `json:"created_at"`
	GameJSON    jeopardy.GameDefinition `json:"game_json"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Game fetches metadata and the sanitized definition, for lobby headers
// and editors.
func (c *Client) Game(ctx context.Context, id string) (Game, error) {
	return c.getGame(ctx, "/api/games/"+url.PathEscape(id))
}

// Play fetches the full definition including answers. A session makes
// exactly one load attempt; callers get the error, no retries happen here.
func (c *Client) Play(ctx context.Context, id string) (Game, error) {
	return c.getGame(ctx, "/api/games/"+url.PathEscape(id)+"/play")
}

// SubmitPlayCount posts the play-count increment for a finished session.
// Callers treat this as fire-and-forget: the returned error is for
// logging only, never for control flow.
func (c *Client) SubmitPlayCount(ctx context.Context, gameID string) error {
	body, err := json.Marshal(map[string]string{"game_id": gameID})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/play-count", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting play count: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("posting play count: %s", c.errorMessage(resp))
	}
	return nil
}

func (c *Client) getGame(ctx context.Context, path string) (Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Game{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Game{}, fmt.Errorf("fetching game: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Game{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Game{}, fmt.Errorf("fetching game: %s", c.errorMessage(resp))
	}

	var g Game
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		return Game{}, fmt.Errorf("decoding game: %w", err)
	}
	return g, nil
}

// errorMessage extracts the backend's {error} body, falling back to the
// HTTP status.
func (c *Client) errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return resp.Status
}
