package server

import (
	"context"
	"errors"

	"github.com/eduplay/gameboard/internal/jeopardy"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

type userSession struct {
	UserID string
	Email  string
}

// GameSummary is a game definition row without the payload. Field names
// are the backend wire contract (snake_case), shared with the authoring UI.
type GameSummary struct {
	ID          string `json:"id"`
	GameType    string `json:"game_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PlayCount   int    `json:"play_count"`
	CreatedAt   string `json:"created_at"`
}

// GameDetail is a summary plus the stored definition payload.
type GameDetail struct {
	GameSummary
	GameJSON jeopardy.GameDefinition `json:"game_json"`
}

// GameRequest is the authoring upload body for POST /api/games.
type GameRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	GameJSON    jeopardy.GameDefinition `json:"game_json"`
	Publish     bool                    `json:"is_publish_immediately"`
}

type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (string, error)
	UserByEmail(ctx context.Context, email string) (id, passwordHash string, err error)
	CreateUserSession(ctx context.Context, userID string) (string, error)
	UserFromSession(ctx context.Context, sessionID string) (userSession, error)
	DeleteUserSession(ctx context.Context, sessionID string) error

	CreateGame(ctx context.Context, ownerID string, req GameRequest) (GameDetail, error)
	ListGames(ctx context.Context) ([]GameSummary, error)
	GetGame(ctx context.Context, id string) (GameDetail, error)
	DeleteGame(ctx context.Context, id, ownerID string) error
	IncrementPlayCount(ctx context.Context, gameID string) error
}
