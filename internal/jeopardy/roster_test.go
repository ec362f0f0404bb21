package jeopardy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRosterDefaults(t *testing.T) {
	r := NewRoster(3, 0)
	require.Len(t, r, 3)
	for i, team := range r {
		assert.Equal(t, i+1, team.ID)
		assert.Equal(t, 0, team.Score)
	}
	assert.Equal(t, "Team 1", r[0].Name)
	assert.Equal(t, "Team 3", r[2].Name)
}

func TestResizeClamps(t *testing.T) {
	for req, want := range map[int]int{-4: 1, 0: 1, 1: 1, 6: 6, 7: 6, 100: 6} {
		assert.Len(t, NewRoster(req, 0), want, "requested %d", req)
	}
}

func TestResizePreservesSurvivors(t *testing.T) {
	r := NewRoster(2, 0)
	r = r.Rename(2, "Bravo")
	r[0].Score = 400

	grown := r.Resize(5, 0)
	require.Len(t, grown, 5)
	assert.Equal(t, "Bravo", grown[1].Name)
	assert.Equal(t, 400, grown[0].Score)
	for i := 2; i < 5; i++ {
		assert.Equal(t, i+1, grown[i].ID)
		assert.Equalf(t, 0, grown[i].Score, "team %d", i+1)
	}
	assert.Equal(t, "Team 3", grown[2].Name)
	assert.Equal(t, "Team 5", grown[4].Name)

	shrunk := grown.Resize(2, 0)
	require.Len(t, shrunk, 2)
	assert.Equal(t, "Bravo", shrunk[1].Name)
}

func TestResizeStartingScore(t *testing.T) {
	r := NewRoster(2, 500)
	assert.Equal(t, 500, r[0].Score)
	assert.Equal(t, 500, r[1].Score)
}

func TestResizeDoesNotMutateInput(t *testing.T) {
	r := NewRoster(4, 0)
	_ = r.Resize(2, 0)
	assert.Len(t, r, 4)
}

func TestRenameUnknownIDIsNoop(t *testing.T) {
	r := NewRoster(2, 0)
	out := r.Rename(99, "Ghost")
	assert.Equal(t, r, out)
}

func TestRenameKeepsScore(t *testing.T) {
	r := NewRoster(2, 0)
	r[1].Score = -200
	out := r.Rename(2, "Bravo")
	assert.Equal(t, "Bravo", out[1].Name)
	assert.Equal(t, -200, out[1].Score)
}

func TestReady(t *testing.T) {
	assert.False(t, NewRoster(1, 0).Ready(), "one team is not enough")
	assert.True(t, NewRoster(2, 0).Ready())

	blank := NewRoster(2, 0).Rename(1, "")
	assert.False(t, blank.Ready(), "empty name")

	spaces := NewRoster(3, 0).Rename(2, "   ")
	assert.False(t, spaces.Ready(), "whitespace-only name")
}
