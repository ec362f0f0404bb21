package jeopardy

import "errors"

// State is the session lifecycle phase. A session only exists once its
// definition has loaded, so "no definition yet" is the absence of a
// Session rather than a state of one.
type State string

const (
	// StateLobby: definition loaded, roster still editable, board closed.
	StateLobby State = "lobby"
	// StateBoard: board clickable, no clue open.
	StateBoard State = "board_open"
	// StateClueHidden: a clue is open, answer not yet revealed.
	StateClueHidden State = "clue_hidden"
	// StateClueRevealed: answer shown, score controls live.
	StateClueRevealed State = "clue_revealed"
	// StateExited: terminal; the session is being torn down.
	StateExited State = "exited"
)

var (
	ErrNotInLobby     = errors.New("roster is frozen once play starts")
	ErrRosterNotReady = errors.New("need at least two teams with non-empty names")
	ErrExited         = errors.New("session has exited")
)

// Session is the operator-side state machine for one play-through of a
// board. It is the sole mutator of play progress and scores: one logical
// actor drives it, so it carries no locking of its own.
type Session struct {
	def    GameDefinition
	roster Roster
	played map[string]struct{}
	active *Clue
	state  State
}

// New validates the definition and returns a session in the lobby state
// with a default two-team roster.
func New(def GameDefinition) (*Session, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		def:    def,
		roster: NewRoster(2, def.Settings.StartingScore),
		played: make(map[string]struct{}),
		state:  StateLobby,
	}, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Definition() GameDefinition { return s.def }

// Roster returns a copy of the current roster in creation order.
func (s *Session) Roster() Roster {
	out := make(Roster, len(s.roster))
	copy(out, s.roster)
	return out
}

// Played reports whether the clue id has been opened and closed.
func (s *Session) Played(clueID string) bool {
	_, ok := s.played[clueID]
	return ok
}

// ActiveClue returns the currently open clue, whether its answer is
// revealed, and whether any clue is open at all.
func (s *Session) ActiveClue() (clue Clue, revealed bool, ok bool) {
	if s.active == nil {
		return Clue{}, false, false
	}
	return *s.active, s.state == StateClueRevealed, true
}

// SetTeamCount resizes the roster. Only legal before play starts.
func (s *Session) SetTeamCount(n int) error {
	if s.state != StateLobby {
		return s.rosterErr()
	}
	s.roster = s.roster.Resize(n, s.def.Settings.StartingScore)
	return nil
}

// RenameTeam renames a roster entry. Only legal before play starts; an
// unknown team id is a silent no-op.
func (s *Session) RenameTeam(id int, name string) error {
	if s.state != StateLobby {
		return s.rosterErr()
	}
	s.roster = s.roster.Rename(id, name)
	return nil
}

func (s *Session) rosterErr() error {
	if s.state == StateExited {
		return ErrExited
	}
	return ErrNotInLobby
}

// Start freezes the roster and opens the board.
func (s *Session) Start() error {
	if s.state == StateExited {
		return ErrExited
	}
	if s.state != StateLobby {
		return nil // already started
	}
	if !s.roster.Ready() {
		return ErrRosterNotReady
	}
	s.state = StateBoard
	return nil
}

// SelectClue opens a clue from the board. Selecting an already-played or
// unknown clue, or selecting while another clue is open, is a no-op; the
// return value reports whether the clue actually opened.
func (s *Session) SelectClue(clueID string) bool {
	if s.state != StateBoard {
		return false
	}
	if _, done := s.played[clueID]; done {
		return false
	}
	clue, ok := s.def.findClue(clueID)
	if !ok {
		return false
	}
	s.active = &clue
	s.state = StateClueHidden
	return true
}

// Reveal shows the active clue's answer. One-way per open cycle: there is
// no un-reveal. No-op unless a clue is open and hidden.
func (s *Session) Reveal() bool {
	if s.state != StateClueHidden {
		return false
	}
	s.state = StateClueRevealed
	return true
}

// AdjustScore applies ±(active clue value) to the named team. Only legal
// while the answer is revealed, and repeatable: awarding several teams or
// undoing a mistaken press are both whole-value adjustments. Deciding when
// the clue is done stays with the explicit Close.
func (s *Session) AdjustScore(teamID int, correct bool) bool {
	if s.state != StateClueRevealed {
		return false
	}
	delta := s.active.Value
	if !correct {
		delta = -delta
	}
	for i := range s.roster {
		if s.roster[i].ID == teamID {
			s.roster[i].Score += delta
			return true
		}
	}
	return false
}

// Close returns to the board, marking the active clue played so it can
// never be reopened. Only reachable while the answer is revealed.
func (s *Session) Close() bool {
	if s.state != StateClueRevealed {
		return false
	}
	s.played[s.active.ID] = struct{}{}
	s.active = nil
	s.state = StateBoard
	return true
}

// Exit terminates the session from any state. Returns true only on the
// call that performs the transition, so the caller can fire its exit
// notification exactly once. A clue abandoned mid-open is NOT marked
// played: Close never ran for it.
func (s *Session) Exit() bool {
	if s.state == StateExited {
		return false
	}
	s.active = nil
	s.state = StateExited
	return true
}
