package server

import (
	"context"
	"testing"
)

func TestSeedDemoIdempotent(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := SeedDemo(ctx, testLogger(), store); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	games, err := store.ListGames(ctx)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game after re-seed, got %d", len(games))
	}
}

// A deleted demo game leaves the demo author behind; the next startup
// seed must reuse that author instead of failing on the unique email.
func TestSeedDemoAfterGameDeleted(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	authorID, _, err := store.UserByEmail(ctx, demoEmail)
	if err != nil {
		t.Fatalf("looking up demo author: %v", err)
	}
	if err := store.DeleteGame(ctx, demoGameID(t, store), authorID); err != nil {
		t.Fatalf("deleting demo game: %v", err)
	}

	if err := SeedDemo(ctx, testLogger(), store); err != nil {
		t.Fatalf("re-seed after delete: %v", err)
	}

	games, err := store.ListGames(ctx)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected the demo game back, got %d games", len(games))
	}
	if games[0].Name != "General Knowledge Night" {
		t.Errorf("unexpected re-seeded game %q", games[0].Name)
	}
}
