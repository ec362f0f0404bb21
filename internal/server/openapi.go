package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "GameBoard API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the GameBoard mini-game platform: game definition storage and live Jeopardy operator sessions.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/auth/register
	postRegister, _ := r.NewOperationContext(http.MethodPost, "/api/auth/register")
	postRegister.SetSummary("Register author")
	postRegister.SetDescription("Creates an author account. Sets author_session cookie.")
	postRegister.AddReqStructure(RegisterRequest{})
	postRegister.AddRespStructure(MeResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postRegister)

	// POST /api/auth/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/auth/login")
	postLogin.SetSummary("Author login")
	postLogin.SetDescription("Authenticate with email and password. Sets author_session cookie.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(MeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/auth/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/auth/logout")
	postLogout.SetSummary("Author logout")
	postLogout.SetDescription("Clears the author session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/auth/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/auth/me")
	getMe.SetSummary("Current author")
	getMe.SetDescription("Returns the currently authenticated author. Requires author_session cookie.")
	getMe.AddRespStructure(MeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns all stored game definitions with play counts.")
	listGames.AddRespStructure([]GameSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listGames)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Upload game definition")
	createGame.SetDescription("Stores an authored board. Validates the 5-clue-per-category grid. Requires author_session cookie.")
	createGame.AddReqStructure(GameRequest{})
	createGame.AddRespStructure(GameDetail{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createGame)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns game metadata and its definition with answers stripped.")
	getGame.AddRespStructure(GameDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// GET /api/games/{gameID}/play
	getGamePlay, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/play")
	getGamePlay.SetSummary("Get game for play")
	getGamePlay.SetDescription("Returns the full definition including answers. Operator-privileged read.")
	getGamePlay.AddRespStructure(GameDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	getGamePlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGamePlay)

	// DELETE /api/games/{gameID}
	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{gameID}")
	deleteGame.SetSummary("Delete game")
	deleteGame.SetDescription("Deletes an authored game. Requires author_session cookie; only the owner may delete.")
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteGame)

	// POST /api/play-count
	postPlayCount, _ := r.NewOperationContext(http.MethodPost, "/api/play-count")
	postPlayCount.SetSummary("Increment play count")
	postPlayCount.SetDescription("Best-effort play counter, posted when a session exits. Response body is irrelevant to callers.")
	postPlayCount.AddReqStructure(PlayCountRequest{})
	postPlayCount.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postPlayCount.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postPlayCount)

	// POST /api/sessions
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	createSession.SetSummary("Create session")
	createSession.SetDescription("Loads a game definition and opens an operator session in the lobby state. A single load attempt is made.")
	createSession.AddReqStructure(CreateSessionRequest{})
	createSession.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(createSession)

	// GET /api/sessions/{sessionID}/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/state")
	getState.SetSummary("Get session state")
	getState.SetDescription("Returns the full session snapshot: board, scoreboard, active clue.")
	getState.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getState)

	// GET /api/sessions/{sessionID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of session updates for board viewers.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// PUT /api/sessions/{sessionID}/teams
	putTeams, _ := r.NewOperationContext(http.MethodPut, "/api/sessions/{sessionID}/teams")
	putTeams.SetSummary("Set team count")
	putTeams.SetDescription("Resizes the roster, clamped to 1-6 teams. Only legal before play starts.")
	putTeams.AddReqStructure(TeamCountRequest{})
	putTeams.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putTeams.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(putTeams)

	// PUT /api/sessions/{sessionID}/teams/{teamID}
	putTeam, _ := r.NewOperationContext(http.MethodPut, "/api/sessions/{sessionID}/teams/{teamID}")
	putTeam.SetSummary("Rename team")
	putTeam.SetDescription("Renames a roster entry. Only legal before play starts; unknown ids are a no-op.")
	putTeam.AddReqStructure(RenameTeamRequest{})
	putTeam.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(putTeam)

	// POST /api/sessions/{sessionID}/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/start")
	postStart.SetSummary("Start play")
	postStart.SetDescription("Freezes the roster and opens the board. Requires at least two named teams.")
	postStart.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postStart)

	// POST /api/sessions/{sessionID}/clues/{clueID}
	postSelect, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/clues/{clueID}")
	postSelect.SetSummary("Select clue")
	postSelect.SetDescription("Opens a clue from the board. Played, unknown, or concurrently open clues are a no-op.")
	postSelect.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postSelect)

	// POST /api/sessions/{sessionID}/reveal
	postReveal, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/reveal")
	postReveal.SetSummary("Reveal answer")
	postReveal.SetDescription("Shows the active clue's answer. One-way per clue-open cycle.")
	postReveal.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postReveal)

	// POST /api/sessions/{sessionID}/score
	postScore, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/score")
	postScore.SetSummary("Adjust score")
	postScore.SetDescription("Applies plus or minus the active clue's value to a team. Only legal after reveal; repeatable.")
	postScore.AddReqStructure(ScoreRequest{})
	postScore.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postScore)

	// POST /api/sessions/{sessionID}/close
	postClose, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/close")
	postClose.SetSummary("Close clue")
	postClose.SetDescription("Returns to the board and marks the active clue played.")
	postClose.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postClose)

	// POST /api/sessions/{sessionID}/exit
	postExit, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/exit")
	postExit.SetSummary("Exit session")
	postExit.SetDescription("Tears down the session from any state and fires a best-effort play-count increment.")
	postExit.AddRespStructure(SessionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postExit)

	// GET /ws/sessions/{sessionID}
	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws/sessions/{sessionID}")
	getWS.SetSummary("WebSocket session stream")
	getWS.SetDescription("Upgrades to a WebSocket that carries the same events as the SSE stream.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
