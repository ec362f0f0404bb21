package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Clue-play endpoints. Invalid transitions (selecting a played clue,
// revealing with nothing open, scoring before reveal) are no-ops, not
// errors: the handler echoes the unchanged state with 200 so a stale or
// double-clicking client never sees a failure for a guard doing its job.

func handleSessionSelect(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clueID := chi.URLParam(r, "clueID")

		ls := sessionFrom(r)
		ls.mu.Lock()
		selected := ls.sess.SelectClue(clueID)
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if selected {
			broker.Publish(ls.ID, Event{Type: "clue_selected", ClueID: clueID, State: resp.State})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSessionReveal(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls := sessionFrom(r)
		ls.mu.Lock()
		revealed := ls.sess.Reveal()
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if revealed {
			broker.Publish(ls.ID, Event{Type: "answer_revealed", ClueID: resp.ActiveClue.ClueID, State: resp.State})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ScoreRequest is the request body for POST /api/sessions/{id}/score.
type ScoreRequest struct {
	TeamID  int  `json:"team_id"`
	Correct bool `json:"correct"`
}

func handleSessionScore(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoreRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ls := sessionFrom(r)
		ls.mu.Lock()
		var delta int
		if clue, _, ok := ls.sess.ActiveClue(); ok {
			delta = clue.Value
			if !req.Correct {
				delta = -delta
			}
		}
		adjusted := ls.sess.AdjustScore(req.TeamID, req.Correct)
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if adjusted {
			broker.Publish(ls.ID, Event{Type: "score_adjusted", TeamID: req.TeamID, Delta: delta, State: resp.State})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSessionClose(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls := sessionFrom(r)
		ls.mu.Lock()
		var clueID string
		if clue, _, ok := ls.sess.ActiveClue(); ok {
			clueID = clue.ID
		}
		closed := ls.sess.Close()
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if closed {
			broker.Publish(ls.ID, Event{Type: "clue_closed", ClueID: clueID, State: resp.State})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleSessionExit tears the session down from any state and fires the
// play-count notification exactly once. An abandoned open clue stays
// unplayed; only Close marks clues played.
func handleSessionExit(sessions *Registry, broker *Broker, notifyPlayed func(gameID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls := sessionFrom(r)

		ls.mu.Lock()
		exited := ls.sess.Exit()
		resp := ls.stateResponse()
		ls.mu.Unlock()

		if exited {
			sessions.Remove(ls.ID)
			broker.Publish(ls.ID, Event{Type: "session_exited", State: resp.State})
			notifyPlayed(ls.GameID)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
