package jeopardy

// ScoreEntry is one scoreboard row. Negative is precomputed so renderers
// can style losing scores without re-deriving the rule.
type ScoreEntry struct {
	TeamID   int    `json:"teamId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Negative bool   `json:"negative"`
}

// Scoreboard derives name/score pairs from the roster in creation order.
// Teams are never re-sorted by rank; display order is the order they were
// created in.
func (s *Session) Scoreboard() []ScoreEntry {
	out := make([]ScoreEntry, len(s.roster))
	for i, t := range s.roster {
		out[i] = ScoreEntry{
			TeamID:   t.ID,
			Name:     t.Name,
			Score:    t.Score,
			Negative: t.Score < 0,
		}
	}
	return out
}

// BoardCell is one selectable cell. A nil cell in a column is a
// placeholder: the grid always renders BoardRows rows per category even
// when the stored category is short.
type BoardCell struct {
	ClueID string `json:"clueId"`
	Value  int    `json:"value"`
	Played bool   `json:"played"`
}

// BoardColumn is one category column of the rendered grid.
type BoardColumn struct {
	Title string                `json:"title"`
	Cells [BoardRows]*BoardCell `json:"cells"`
}

// Board derives the playable grid for the first round: category titles
// with a fixed number of rows, each cell carrying its played flag. Answers
// and prompts are never part of the board view; they only surface through
// the active clue.
func (s *Session) Board() []BoardColumn {
	if len(s.def.Rounds) == 0 {
		return nil
	}
	cats := s.def.Rounds[0].Categories
	out := make([]BoardColumn, len(cats))
	for i, cat := range cats {
		col := BoardColumn{Title: cat.Title}
		for row := 0; row < BoardRows && row < len(cat.Clues); row++ {
			clue := cat.Clues[row]
			col.Cells[row] = &BoardCell{
				ClueID: clue.ID,
				Value:  clue.Value,
				Played: s.Played(clue.ID),
			}
		}
		out[i] = col
	}
	return out
}
