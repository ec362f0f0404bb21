// Package jeopardy implements the Jeopardy board game: definition wire
// types, the pre-game team roster, and the operator session state machine.
// It has no dependencies outside the standard library.
package jeopardy

import (
	"errors"
	"fmt"
	"strings"
)

// BoardRows is the number of clue rows the board renders per category.
// Categories are authored with exactly this many clues; at play time a
// missing clue at a row is rendered as an empty placeholder, not an error.
const BoardRows = 5

// Clue is a single question/answer/point-value cell. Answer is only ever
// serialized on the privileged play read; Sanitized strips it everywhere else.
type Clue struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	Answer        string `json:"answer,omitempty"`
	Value         int    `json:"value"`
	IsDailyDouble bool   `json:"is_daily_double"`
}

// Category is a named column of clues.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Clues []Clue `json:"clues"`
}

// Round is an ordered set of categories. Only the first round is played
// in a session; later rounds are stored but never progressed to.
type Round struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// Settings carries the authored game options. TimeLimitPerClue is advisory:
// the session never enforces it with a timer.
type Settings struct {
	MaxTeams                 int  `json:"max_teams"`
	TimeLimitPerClue         int  `json:"time_limit_per_clue"`
	AllowDailyDouble         bool `json:"allow_daily_double"`
	DoubleJeopardyMultiplier int  `json:"double_jeopardy_multiplier"`
	StartingScore            int  `json:"starting_score"`
}

// GameDefinition is the full authored payload stored in the games table
// game_json column. It is immutable during play.
type GameDefinition struct {
	Settings Settings `json:"settings"`
	Rounds   []Round  `json:"rounds"`
}

var (
	ErrNoRounds     = errors.New("definition has no rounds")
	ErrNoCategories = errors.New("first round has no categories")
)

// Validate checks an authored definition before it is accepted for storage:
// at least one round with categories, exactly BoardRows clues per category,
// positive point values, non-blank prompts and answers, and clue ids unique
// within the round.
func (d *GameDefinition) Validate() error {
	if len(d.Rounds) == 0 {
		return ErrNoRounds
	}
	round := d.Rounds[0]
	if len(round.Categories) == 0 {
		return ErrNoCategories
	}

	seen := make(map[string]struct{})
	for ci, cat := range round.Categories {
		if strings.TrimSpace(cat.Title) == "" {
			return fmt.Errorf("category %d: title is required", ci+1)
		}
		if len(cat.Clues) != BoardRows {
			return fmt.Errorf("category %q: expected %d clues, got %d", cat.Title, BoardRows, len(cat.Clues))
		}
		for ri, clue := range cat.Clues {
			if clue.ID == "" {
				return fmt.Errorf("category %q row %d: clue id is required", cat.Title, ri+1)
			}
			if _, dup := seen[clue.ID]; dup {
				return fmt.Errorf("duplicate clue id %q", clue.ID)
			}
			seen[clue.ID] = struct{}{}
			if clue.Value <= 0 {
				return fmt.Errorf("clue %q: point value must be positive", clue.ID)
			}
			if strings.TrimSpace(clue.Question) == "" {
				return fmt.Errorf("clue %q: question is required", clue.ID)
			}
			if strings.TrimSpace(clue.Answer) == "" {
				return fmt.Errorf("clue %q: answer is required", clue.ID)
			}
		}
	}
	return nil
}

// Sanitized returns a deep copy of the definition with every answer
// blanked. Served to anything that is not the session operator.
func (d *GameDefinition) Sanitized() GameDefinition {
	out := GameDefinition{
		Settings: d.Settings,
		Rounds:   make([]Round, len(d.Rounds)),
	}
	for i, round := range d.Rounds {
		r := round
		r.Categories = make([]Category, len(round.Categories))
		for j, cat := range round.Categories {
			c := cat
			c.Clues = make([]Clue, len(cat.Clues))
			for k, clue := range cat.Clues {
				clue.Answer = ""
				c.Clues[k] = clue
			}
			r.Categories[j] = c
		}
		out.Rounds[i] = r
	}
	return out
}

// findClue looks up a clue by id in the first round.
func (d *GameDefinition) findClue(id string) (Clue, bool) {
	if len(d.Rounds) == 0 {
		return Clue{}, false
	}
	for _, cat := range d.Rounds[0].Categories {
		for _, clue := range cat.Clues {
			if clue.ID == id {
				return clue, true
			}
		}
	}
	return Clue{}, false
}
