package server

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, store Store, spaDir string) {
	sessions := NewRegistry()
	broker := NewBroker()

	// Best-effort play-count increment, fired on session exit. Runs off
	// the request goroutine; failures are logged and swallowed so exit
	// navigation is never blocked on telemetry.
	notifyPlayed := func(gameID string) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.IncrementPlayCount(ctx, gameID); err != nil {
				logger.Warn("play count increment failed", "game_id", gameID, "error", err)
			}
		}()
	}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("GameBoard API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))
	r.Get("/ws/sessions/{sessionID}", handleSessionSocket(logger, sessions, broker))

	r.Route("/api", func(r chi.Router) {
		// Author accounts.
		r.Post("/auth/register", handleRegister(store))
		r.Post("/auth/login", handleLogin(store))
		r.Post("/auth/logout", handleLogout(store))
		r.Get("/auth/me", handleMe(store))

		// Game definitions. Reads are open; the /play read is the only
		// one carrying answers. Authoring requires a logged-in author.
		r.Get("/games", handleListGames(store))
		r.Get("/games/{gameID}", handleGetGame(store))
		r.Get("/games/{gameID}/play", handleGetGameForPlay(store))
		r.Post("/play-count", handlePlayCount(store))
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(store))
			r.Post("/games", handleCreateGame(store))
			r.Delete("/games/{gameID}", handleDeleteGame(store))
		})

		// Live operator sessions. {sessionID} is resolved by sessionMiddleware.
		r.Post("/sessions", handleSessionCreate(store, sessions))
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Use(sessionMiddleware(sessions))
			r.Get("/state", handleSessionState())
			r.Get("/events", handleSessionEvents(broker))
			r.Put("/teams", handleSessionTeams(broker))
			r.Put("/teams/{teamID}", handleSessionRenameTeam(broker))
			r.Post("/start", handleSessionStart(broker))
			r.Post("/clues/{clueID}", handleSessionSelect(broker))
			r.Post("/reveal", handleSessionReveal(broker))
			r.Post("/score", handleSessionScore(broker))
			r.Post("/close", handleSessionClose(broker))
			r.Post("/exit", handleSessionExit(sessions, broker, notifyPlayed))
		})
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
