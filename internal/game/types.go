// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - LetterStatus: per-letter result of a guess (correct/present/absent).
//   - GuessResult: the evaluated row.
//   - State: session lifecycle (ready → in_progress → won/lost).
//   - Snapshot: read-only view handed to renderers.

package game

// LetterStatus is the evaluation result for a single letter in a guess.
//   - "correct": same letter, same position as the secret.
//   - "present": letter occurs elsewhere in the secret (multiplicity honored).
//   - "absent":  no unmatched occurrence of the letter is left in the secret.
type LetterStatus string

const (
	StatusCorrect LetterStatus = "correct"
	StatusPresent LetterStatus = "present"
	StatusAbsent  LetterStatus = "absent"
)

// rank orders statuses for keyboard hints: a key keeps its best status.
func (s LetterStatus) rank() int {
	switch s {
	case StatusCorrect:
		return 3
	case StatusPresent:
		return 2
	case StatusAbsent:
		return 1
	}
	return 0
}

// GuessResult is the evaluation of one submitted row.
type GuessResult struct {
	Statuses []LetterStatus `json:"statuses"`
	Winner   bool           `json:"winner"`
}

// State is the lifecycle state of a Session.
type State string

const (
	StateReady      State = "ready"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether no further input is accepted until Reset.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Reveal is a submitted row together with its evaluation.
type Reveal struct {
	Guess  string      `json:"guess"`
	Result GuessResult `json:"result"`
}

// TimerSnapshot is the countdown part of a Snapshot.
type TimerSnapshot struct {
	RemainingMs  int64 `json:"remainingMs"`
	TotalMs      int64 `json:"totalMs"`
	Running      bool  `json:"running"`
	ShowProgress bool  `json:"showProgress"`
}

// Snapshot is a copy of the session state for rendering. Mutating it has no
// effect on the session.
type Snapshot struct {
	State    State                   `json:"state"`
	Mode     string                  `json:"mode,omitempty"`
	Rows     int                     `json:"rows"`
	Cols     int                     `json:"cols"`
	Grid     [][]string              `json:"grid"`
	Row      int                     `json:"row"`
	Col      int                     `json:"col"`
	Revealed []Reveal                `json:"revealed"`
	Keys     map[string]LetterStatus `json:"keys"`
	Timer    *TimerSnapshot          `json:"timer,omitempty"`
	Secret   string                  `json:"secret,omitempty"` // only once the game is over
}
