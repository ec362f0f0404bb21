package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eduplay/gameboard/internal/jeopardy"
)

// CreateSessionRequest is the request body for POST /api/sessions.
type CreateSessionRequest struct {
	GameID string `json:"game_id"`
}

// ActiveClueInfo describes the currently open clue. Answer is present
// only once revealed; reveal is one-way, so it never disappears again
// until the clue closes.
type ActiveClueInfo struct {
	ClueID        string `json:"clueId"`
	Value         int    `json:"value"`
	Question      string `json:"question"`
	IsDailyDouble bool   `json:"isDailyDouble"`
	Revealed      bool   `json:"revealed"`
	Answer        string `json:"answer,omitempty"`
}

// SessionStateResponse is the full operator-facing session snapshot,
// returned by every session endpoint so no-op transitions simply echo the
// unchanged state.
type SessionStateResponse struct {
	ID         string                 `json:"id"`
	GameID     string                 `json:"gameId"`
	GameName   string                 `json:"gameName"`
	State      string                 `json:"state"`
	RoundName  string                 `json:"roundName"`
	Settings   jeopardy.Settings      `json:"settings"`
	Board      []jeopardy.BoardColumn `json:"board"`
	Teams      jeopardy.Roster        `json:"teams"`
	Scoreboard []jeopardy.ScoreEntry  `json:"scoreboard"`
	ActiveClue *ActiveClueInfo        `json:"activeClue,omitempty"`
}

// stateResponse builds the snapshot. Callers must hold ls.mu.
func (ls *liveSession) stateResponse() SessionStateResponse {
	def := ls.sess.Definition()
	resp := SessionStateResponse{
		ID:         ls.ID,
		GameID:     ls.GameID,
		GameName:   ls.GameName,
		State:      string(ls.sess.State()),
		RoundName:  def.Rounds[0].Name,
		Settings:   def.Settings,
		Board:      ls.sess.Board(),
		Teams:      ls.sess.Roster(),
		Scoreboard: ls.sess.Scoreboard(),
	}

	if clue, revealed, ok := ls.sess.ActiveClue(); ok {
		info := &ActiveClueInfo{
			ClueID:        clue.ID,
			Value:         clue.Value,
			Question:      clue.Question,
			IsDailyDouble: clue.IsDailyDouble,
			Revealed:      revealed,
		}
		if revealed {
			info.Answer = clue.Answer
		}
		resp.ActiveClue = info
	}
	return resp
}

func handleSessionCreate(store Store, sessions *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.GameID) == "" {
			writeError(w, http.StatusBadRequest, "game_id is required")
			return
		}

		// Single load attempt; a failure here is a blocking error for the
		// whole session, never a half-rendered board.
		detail, err := store.GetGame(r.Context(), req.GameID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load game definition")
			return
		}

		sess, err := jeopardy.New(detail.GameJSON)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "stored definition is not playable: "+err.Error())
			return
		}

		ls := sessions.Create(detail.ID, detail.Name, sess)

		ls.mu.Lock()
		resp := ls.stateResponse()
		ls.mu.Unlock()
		writeJSON(w, http.StatusCreated, resp)
	}
}

func handleSessionState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls := sessionFrom(r)
		ls.mu.Lock()
		resp := ls.stateResponse()
		ls.mu.Unlock()
		writeJSON(w, http.StatusOK, resp)
	}
}

// TeamCountRequest is the request body for PUT /api/sessions/{id}/teams.
type TeamCountRequest struct {
	Count int `json:"count"`
}

func handleSessionTeams(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamCountRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ls := sessionFrom(r)
		ls.mu.Lock()
		err := ls.sess.SetTeamCount(req.Count)
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if writeSessionError(w, err) {
			return
		}
		broker.Publish(ls.ID, Event{Type: "teams_updated", State: resp.State})
		writeJSON(w, http.StatusOK, resp)
	}
}

// RenameTeamRequest is the request body for PUT /api/sessions/{id}/teams/{teamID}.
type RenameTeamRequest struct {
	Name string `json:"name"`
}

func handleSessionRenameTeam(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := strconv.Atoi(chi.URLParam(r, "teamID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid team id")
			return
		}

		var req RenameTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ls := sessionFrom(r)
		ls.mu.Lock()
		err = ls.sess.RenameTeam(teamID, req.Name)
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if writeSessionError(w, err) {
			return
		}
		broker.Publish(ls.ID, Event{Type: "teams_updated", TeamID: teamID, State: resp.State})
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSessionStart(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls := sessionFrom(r)
		ls.mu.Lock()
		err := ls.sess.Start()
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if writeSessionError(w, err) {
			return
		}
		broker.Publish(ls.ID, Event{Type: "session_started", State: resp.State})
		writeJSON(w, http.StatusOK, resp)
	}
}

// writeSessionError maps domain errors to HTTP statuses. Returns true if
// a response was written. jeopardy.ErrExited never surfaces here: exit
// removes the session from the registry in the same request, so anything
// after it 404s in sessionMiddleware.
func writeSessionError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, jeopardy.ErrNotInLobby):
		writeError(w, http.StatusConflict, "roster is frozen once play starts")
	case errors.Is(err, jeopardy.ErrRosterNotReady):
		writeError(w, http.StatusConflict, "need at least two teams with non-empty names")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
