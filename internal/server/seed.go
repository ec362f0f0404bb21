package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/eduplay/gameboard/internal/jeopardy"
)

const (
	demoEmail    = "demo@gameboard.local"
	demoPassword = "demo-operator"
)

// SeedDemo creates a demo author and a ready-to-play 5x5 board if the
// store holds no games yet. Idempotent: does nothing when games exist,
// and reuses the demo author if an earlier seed already registered it
// (the demo game may have been deleted since).
func SeedDemo(ctx context.Context, logger *slog.Logger, store Store) error {
	games, err := store.ListGames(ctx)
	if err != nil {
		return err
	}
	if len(games) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userID, err := store.CreateUser(ctx, demoEmail, string(hash))
	if errors.Is(err, ErrEmailTaken) {
		userID, _, err = store.UserByEmail(ctx, demoEmail)
	}
	if err != nil {
		return err
	}

	detail, err := store.CreateGame(ctx, userID, GameRequest{
		Name:        "General Knowledge Night",
		Description: "A demo board covering five everyday categories.",
		GameJSON:    demoDefinition(),
		Publish:     true,
	})
	if err != nil {
		return err
	}

	logger.Info("demo game seeded", "game_id", detail.ID, "author", demoEmail)
	return nil
}

func demoDefinition() jeopardy.GameDefinition {
	categories := []struct {
		title string
		qa    [jeopardy.BoardRows][2]string
	}{
		{"Science", [jeopardy.BoardRows][2]string{
			{"The chemical symbol for gold", "Au"},
			{"The planet closest to the sun", "Mercury"},
			{"The gas plants absorb from the air", "Carbon dioxide"},
			{"The unit of electrical resistance", "Ohm"},
			{"The particle with a negative charge", "Electron"},
		}},
		{"History", [jeopardy.BoardRows][2]string{
			{"The year the Berlin Wall fell", "1989"},
			{"The first president of the United States", "George Washington"},
			{"The empire ruled by Julius Caesar", "Rome"},
			{"The ship that sank in 1912", "Titanic"},
			{"The war fought between 1914 and 1918", "World War I"},
		}},
		{"Geography", [jeopardy.BoardRows][2]string{
			{"The longest river in South America", "The Amazon"},
			{"The capital of Japan", "Tokyo"},
			{"The smallest country in the world", "Vatican City"},
			{"The desert covering much of northern Africa", "The Sahara"},
			{"The mountain range containing Everest", "The Himalayas"},
		}},
		{"Sports", [jeopardy.BoardRows][2]string{
			{"The number of players on a soccer team", "11"},
			{"The sport played at Wimbledon", "Tennis"},
			{"The country that hosts the Tour de France", "France"},
			{"The points a touchdown is worth", "6"},
			{"The distance of a marathon in miles", "26.2"},
		}},
		{"Movies", [jeopardy.BoardRows][2]string{
			{"The wizard school in Harry Potter", "Hogwarts"},
			{"The shark film directed by Spielberg", "Jaws"},
			{"The toy cowboy in Toy Story", "Woody"},
			{"The ring-bearer in The Lord of the Rings", "Frodo"},
			{"The 1997 film about a sinking ocean liner", "Titanic"},
		}},
	}

	cats := make([]jeopardy.Category, len(categories))
	for c, src := range categories {
		clues := make([]jeopardy.Clue, jeopardy.BoardRows)
		for r, qa := range src.qa {
			clues[r] = jeopardy.Clue{
				ID:       fmt.Sprintf("clue-%d-%d", c, r),
				Question: qa[0],
				Answer:   qa[1],
				Value:    (r + 1) * 200,
			}
		}
		cats[c] = jeopardy.Category{
			ID:    fmt.Sprintf("cat-%d", c),
			Title: src.title,
			Clues: clues,
		}
	}

	return jeopardy.GameDefinition{
		Settings: jeopardy.Settings{
			MaxTeams:                 6,
			TimeLimitPerClue:         30,
			AllowDailyDouble:         true,
			DoubleJeopardyMultiplier: 2,
		},
		Rounds: []jeopardy.Round{{
			ID:         "round-1",
			Type:       "jeopardy",
			Name:       "Round 1",
			Categories: cats,
		}},
	}
}
