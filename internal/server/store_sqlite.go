package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eduplay/gameboard/internal/jeopardy"
)

// SQLiteStore implements Store over a libSQL database. Game definitions
// are stored whole in the games.game_json column, the same shape the
// authoring UI uploads.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateUser(ctx context.Context, email, passwordHash string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES (?, ?)
		RETURNING id
	`, email, passwordHash).Scan(&id)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return "", ErrEmailTaken
	}
	return id, err
}

func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM users WHERE email = ?
	`, email).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return id, hash, err
}

func (s *SQLiteStore) CreateUserSession(ctx context.Context, userID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO user_sessions (user_id)
		VALUES (?)
		RETURNING id
	`, userID).Scan(&id)
	return id, err
}

func (s *SQLiteStore) UserFromSession(ctx context.Context, sessionID string) (userSession, error) {
	var sess userSession
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email
		FROM user_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.UserID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return userSession{}, errNoSession
	}
	return sess, err
}

func (s *SQLiteStore) DeleteUserSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) CreateGame(ctx context.Context, ownerID string, req GameRequest) (GameDetail, error) {
	payload, err := json.Marshal(req.GameJSON)
	if err != nil {
		return GameDetail{}, fmt.Errorf("encoding definition: %w", err)
	}

	published := 0
	if req.Publish {
		published = 1
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO games (owner_id, name, description, game_json, published)
		VALUES (?, ?, ?, jsonb(?), ?)
		RETURNING id
	`, ownerID, req.Name, req.Description, string(payload), published).Scan(&id)
	if err != nil {
		return GameDetail{}, err
	}
	return s.GetGame(ctx, id)
}

func (s *SQLiteStore) ListGames(ctx context.Context) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.game_type, g.name, g.description, g.created_at,
		       (SELECT COUNT(*) FROM play_log p WHERE p.game_id = g.id)
		FROM games g
		ORDER BY g.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []GameSummary
	for rows.Next() {
		var g GameSummary
		if err := rows.Scan(&g.ID, &g.GameType, &g.Name, &g.Description, &g.CreatedAt, &g.PlayCount); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *SQLiteStore) GetGame(ctx context.Context, id string) (GameDetail, error) {
	var d GameDetail
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.game_type, g.name, g.description, g.created_at, json(g.game_json),
		       (SELECT COUNT(*) FROM play_log p WHERE p.game_id = g.id)
		FROM games g
		WHERE g.id = ?
	`, id).Scan(&d.ID, &d.GameType, &d.Name, &d.Description, &d.CreatedAt, &payload, &d.PlayCount)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	if err != nil {
		return d, err
	}

	var def jeopardy.GameDefinition
	if err := json.Unmarshal([]byte(payload), &def); err != nil {
		return d, fmt.Errorf("decoding definition for game %s: %w", id, err)
	}
	d.GameJSON = def
	return d, nil
}

func (s *SQLiteStore) DeleteGame(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM games WHERE id = ? AND owner_id = ?
	`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) IncrementPlayCount(ctx context.Context, gameID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO play_log (game_id) VALUES (?)`, gameID)
	return err
}
