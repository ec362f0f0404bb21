package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func handleCreateGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		if err := req.GameJSON.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		detail, err := store.CreateGame(r.Context(), userFrom(r).UserID, req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, detail)
	}
}

func handleListGames(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := store.ListGames(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if games == nil {
			games = []GameSummary{}
		}
		writeJSON(w, http.StatusOK, games)
	}
}

// handleGetGame serves game metadata with answers stripped from the
// definition. Used by the lobby for its header and the editor for loading.
func handleGetGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		detail.GameJSON = detail.GameJSON.Sanitized()
		writeJSON(w, http.StatusOK, detail)
	}
}

// handleGetGameForPlay serves the full definition including answers. This
// is the one privileged read; it backs the operator's board.
func handleGetGameForPlay(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func handleDeleteGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteGame(r.Context(), chi.URLParam(r, "gameID"), userFrom(r).UserID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// PlayCountRequest is the request body for POST /api/play-count.
type PlayCountRequest struct {
	GameID string `json:"game_id"`
}

func handlePlayCount(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayCountRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.GameID == "" {
			writeError(w, http.StatusBadRequest, "game_id is required")
			return
		}

		err := store.IncrementPlayCount(r.Context(), req.GameID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
