package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// sessionTestRouter wires the session endpoints the way routes.go does,
// but with a synchronous play-count recorder instead of the background
// notifier so tests can assert on it directly.
func sessionTestRouter(t *testing.T) (*chi.Mux, *SQLiteStore, *[]string) {
	t.Helper()
	store, _ := setupStore(t)

	sessions := NewRegistry()
	broker := NewBroker()
	var counted []string
	notify := func(gameID string) { counted = append(counted, gameID) }

	r := chi.NewRouter()
	r.Post("/api/sessions", handleSessionCreate(store, sessions))
	r.Route("/api/sessions/{sessionID}", func(r chi.Router) {
		r.Use(sessionMiddleware(sessions))
		r.Get("/state", handleSessionState())
		r.Put("/teams", handleSessionTeams(broker))
		r.Put("/teams/{teamID}", handleSessionRenameTeam(broker))
		r.Post("/start", handleSessionStart(broker))
		r.Post("/clues/{clueID}", handleSessionSelect(broker))
		r.Post("/reveal", handleSessionReveal(broker))
		r.Post("/score", handleSessionScore(broker))
		r.Post("/close", handleSessionClose(broker))
		r.Post("/exit", handleSessionExit(sessions, broker, notify))
	})
	return r, store, &counted
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) SessionStateResponse {
	t.Helper()
	var resp SessionStateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return resp
}

func createSession(t *testing.T, r http.Handler, store Store) SessionStateResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sessions", CreateSessionRequest{GameID: demoGameID(t, store)})
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeState(t, w)
}

// startedSessionState creates a session and moves it onto the board.
func startedSessionState(t *testing.T, r http.Handler, store Store) SessionStateResponse {
	t.Helper()
	st := createSession(t, r, store)
	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+st.ID+"/start", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return decodeState(t, w)
}

func TestSessionCreate(t *testing.T) {
	r, store, _ := sessionTestRouter(t)
	st := createSession(t, r, store)

	if st.State != "lobby" {
		t.Errorf("expected lobby, got %q", st.State)
	}
	if st.GameName != "General Knowledge Night" {
		t.Errorf("expected game name, got %q", st.GameName)
	}
	if len(st.Teams) != 2 {
		t.Errorf("expected 2 default teams, got %d", len(st.Teams))
	}
	if len(st.Board) != 5 {
		t.Fatalf("expected 5 board columns, got %d", len(st.Board))
	}
	for _, col := range st.Board {
		for row, cell := range col.Cells {
			if cell == nil {
				t.Fatalf("column %q row %d: unexpected placeholder cell", col.Title, row)
			}
			if cell.Played {
				t.Fatalf("fresh board has played cell %s", cell.ClueID)
			}
		}
	}
	if st.ActiveClue != nil {
		t.Error("fresh session has an active clue")
	}
}

func TestSessionCreateUnknownGame(t *testing.T) {
	r, _, _ := sessionTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/sessions", CreateSessionRequest{GameID: "nope"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSessionUnknownID(t *testing.T) {
	r, _, _ := sessionTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/sessions/nope/state", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSessionLobbyRoster(t *testing.T) {
	r, store, _ := sessionTestRouter(t)
	st := createSession(t, r, store)

	w := doJSON(t, r, http.MethodPut, "/api/sessions/"+st.ID+"/teams", TeamCountRequest{Count: 3})
	if w.Code != http.StatusOK {
		t.Fatalf("resize: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	st = decodeState(t, w)
	if len(st.Teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(st.Teams))
	}

	w = doJSON(t, r, http.MethodPut, "/api/sessions/"+st.ID+"/teams/2", RenameTeamRequest{Name: "Bravo"})
	if w.Code != http.StatusOK {
		t.Fatalf("rename: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	st = decodeState(t, w)
	if st.Teams[1].Name != "Bravo" {
		t.Errorf("expected team 2 renamed, got %q", st.Teams[1].Name)
	}

	// Count is clamped, not rejected.
	w = doJSON(t, r, http.MethodPut, "/api/sessions/"+st.ID+"/teams", TeamCountRequest{Count: 99})
	st = decodeState(t, w)
	if len(st.Teams) != 6 {
		t.Errorf("expected clamp to 6 teams, got %d", len(st.Teams))
	}
}

func TestSessionRosterFrozenAfterStart(t *testing.T) {
	r, store, _ := sessionTestRouter(t)
	st := startedSessionState(t, r, store)

	if st.State != "board_open" {
		t.Fatalf("expected board_open, got %q", st.State)
	}

	w := doJSON(t, r, http.MethodPut, "/api/sessions/"+st.ID+"/teams", TeamCountRequest{Count: 4})
	if w.Code != http.StatusConflict {
		t.Fatalf("resize after start: expected 409, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/sessions/"+st.ID+"/teams/1", RenameTeamRequest{Name: "Late"})
	if w.Code != http.StatusConflict {
		t.Fatalf("rename after start: expected 409, got %d", w.Code)
	}
}

func TestSessionClueFlow(t *testing.T) {
	r, store, _ := sessionTestRouter(t)
	st := startedSessionState(t, r, store)
	base := "/api/sessions/" + st.ID

	// Select the 600-point clue in the first category.
	w := doJSON(t, r, http.MethodPost, base+"/clues/clue-0-2", nil)
	st = decodeState(t, w)
	if st.State != "clue_hidden" {
		t.Fatalf("expected clue_hidden, got %q", st.State)
	}
	if st.ActiveClue == nil || st.ActiveClue.ClueID != "clue-0-2" {
		t.Fatal("expected clue-0-2 active")
	}
	if st.ActiveClue.Value != 600 {
		t.Errorf("expected value 600, got %d", st.ActiveClue.Value)
	}
	if st.ActiveClue.Answer != "" {
		t.Error("answer leaked before reveal")
	}

	// Scoring before reveal is a no-op.
	w = doJSON(t, r, http.MethodPost, base+"/score", ScoreRequest{TeamID: 1, Correct: true})
	st = decodeState(t, w)
	if st.Scoreboard[0].Score != 0 {
		t.Fatalf("score moved before reveal: %d", st.Scoreboard[0].Score)
	}

	// Selecting another clue while one is open is a no-op.
	w = doJSON(t, r, http.MethodPost, base+"/clues/clue-1-0", nil)
	st = decodeState(t, w)
	if st.ActiveClue.ClueID != "clue-0-2" {
		t.Fatalf("active clue replaced while open: %s", st.ActiveClue.ClueID)
	}

	w = doJSON(t, r, http.MethodPost, base+"/reveal", nil)
	st = decodeState(t, w)
	if st.State != "clue_revealed" {
		t.Fatalf("expected clue_revealed, got %q", st.State)
	}
	if st.ActiveClue.Answer == "" {
		t.Fatal("expected answer after reveal")
	}

	w = doJSON(t, r, http.MethodPost, base+"/score", ScoreRequest{TeamID: 1, Correct: true})
	st = decodeState(t, w)
	if st.Scoreboard[0].Score != 600 {
		t.Errorf("expected team 1 at 600, got %d", st.Scoreboard[0].Score)
	}

	w = doJSON(t, r, http.MethodPost, base+"/score", ScoreRequest{TeamID: 2, Correct: false})
	st = decodeState(t, w)
	if st.Scoreboard[1].Score != -600 {
		t.Errorf("expected team 2 at -600, got %d", st.Scoreboard[1].Score)
	}
	if !st.Scoreboard[1].Negative {
		t.Error("expected negative flag on team 2")
	}

	w = doJSON(t, r, http.MethodPost, base+"/close", nil)
	st = decodeState(t, w)
	if st.State != "board_open" {
		t.Fatalf("expected board_open after close, got %q", st.State)
	}
	if st.ActiveClue != nil {
		t.Fatal("active clue survives close")
	}
	if !st.Board[0].Cells[2].Played {
		t.Error("expected clue-0-2 marked played on the board")
	}

	// A played clue cannot reopen.
	w = doJSON(t, r, http.MethodPost, base+"/clues/clue-0-2", nil)
	st = decodeState(t, w)
	if st.State != "board_open" || st.ActiveClue != nil {
		t.Error("played clue reopened")
	}
}

func TestSessionRevealWithoutClueIsNoop(t *testing.T) {
	r, store, _ := sessionTestRouter(t)
	st := startedSessionState(t, r, store)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+st.ID+"/reveal", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	st = decodeState(t, w)
	if st.State != "board_open" {
		t.Errorf("expected board_open, got %q", st.State)
	}
}

func TestSessionExit(t *testing.T) {
	r, store, counted := sessionTestRouter(t)
	st := startedSessionState(t, r, store)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+st.ID+"/exit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("exit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	st = decodeState(t, w)
	if st.State != "exited" {
		t.Errorf("expected exited, got %q", st.State)
	}

	if len(*counted) != 1 || (*counted)[0] != st.GameID {
		t.Fatalf("expected one play-count notification for %s, got %v", st.GameID, *counted)
	}

	// The session is gone; a second exit cannot fire the hook again.
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+st.ID+"/exit", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second exit: expected 404, got %d", w.Code)
	}
	if len(*counted) != 1 {
		t.Fatalf("play-count fired %d times", len(*counted))
	}

	w = doJSON(t, r, http.MethodGet, "/api/sessions/"+st.ID+"/state", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("state after exit: expected 404, got %d", w.Code)
	}

	// Every post-exit request dies in the middleware, not in a handler.
	w = doJSON(t, r, http.MethodPut, "/api/sessions/"+st.ID+"/teams", TeamCountRequest{Count: 3})
	if w.Code != http.StatusNotFound {
		t.Fatalf("roster edit after exit: expected 404, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+st.ID+"/start", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("start after exit: expected 404, got %d", w.Code)
	}
}

func TestSessionExitFromLobby(t *testing.T) {
	r, store, counted := sessionTestRouter(t)
	st := createSession(t, r, store)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+st.ID+"/exit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("exit: expected 200, got %d", w.Code)
	}
	if len(*counted) != 1 {
		t.Fatalf("expected one play-count notification, got %d", len(*counted))
	}
}
