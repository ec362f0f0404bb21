package jeopardy

import (
	"fmt"
	"strings"
)

const (
	// MinTeams is the smallest roster a resize will produce. Starting a
	// session additionally requires at least two teams.
	MinTeams = 1
	// MaxTeams caps the roster regardless of the requested size.
	MaxTeams = 6
)

// Team is a scoring unit. IDs are small integers assigned sequentially
// from 1 and never reused within a session. Score is unbounded in both
// directions.
type Team struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Roster is the ordered set of teams, in creation order. All operations
// return a new roster; the input is never mutated.
type Roster []Team

// NewRoster creates n teams with default names and the given starting score.
func NewRoster(n, startingScore int) Roster {
	return Roster(nil).Resize(n, startingScore)
}

// Resize clamps n to [MinTeams, MaxTeams] and returns a roster of that
// size. Growing appends teams with default "Team {n}" names; shrinking
// truncates from the end. Surviving teams keep their names and scores.
func (r Roster) Resize(n, startingScore int) Roster {
	if n < MinTeams {
		n = MinTeams
	}
	if n > MaxTeams {
		n = MaxTeams
	}

	out := make(Roster, n)
	for i := 0; i < n; i++ {
		if i < len(r) {
			out[i] = r[i]
			continue
		}
		out[i] = Team{
			ID:    i + 1,
			Name:  fmt.Sprintf("Team %d", i+1),
			Score: startingScore,
		}
	}
	return out
}

// Rename replaces the name of the team with the given id. An unknown id
// is a no-op, not an error.
func (r Roster) Rename(id int, name string) Roster {
	out := make(Roster, len(r))
	copy(out, r)
	for i := range out {
		if out[i].ID == id {
			out[i].Name = name
		}
	}
	return out
}

// Ready reports whether play may start: at least two teams, and every
// team's trimmed name is non-empty.
func (r Roster) Ready() bool {
	if len(r) < 2 {
		return false
	}
	for _, t := range r {
		if strings.TrimSpace(t.Name) == "" {
			return false
		}
	}
	return true
}
