// internal/game/session.go
//
// Session is the turn-by-turn state machine for one player.
// Responsibilities:
//   - Start a game from a ModeConfig: grid, secret word, optional countdown.
//   - Apply letter/backspace input to the grid.
//   - Validate and evaluate submitted rows, then resolve win/loss.
//   - Force a loss when the countdown expires.
//   - Emit events describing every committed change.
//
// Concurrency:
//   - A Session behaves as a single actor: every public method and every timer
//     callback runs under one mutex, so input and ticks are serialized.
//   - Timer callbacks carry the generation they were armed for. Start and Reset
//     bump the generation, so a tick scheduled for an earlier game is ignored.
//   - Events are queued under the lock and handed to the sink afterwards, in
//     order. A sink may call back into the session.

package game

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/robalobadob/cosmic-word/internal/timer"
)

var (
	// ErrConfiguration is returned by Start for unusable modes or dictionaries.
	ErrConfiguration = errors.New("game: configuration error")
	// ErrAlreadyStarted is returned by Start when the session is not ready.
	ErrAlreadyStarted = errors.New("game: session already started")
)

// MsgNotInDictionary is the InvalidGuess message for unknown words.
const MsgNotInDictionary = "This word is lost somewhere in the vastness of space."

// Dictionary is what a Session needs from a word list.
type Dictionary interface {
	IsValid(word string) bool
	Normalize(word string) string
	PickSecret(length int) (string, error)
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the tick source for timed modes (default: wall clock).
func WithScheduler(sc timer.Scheduler) Option { return func(s *Session) { s.sched = sc } }

// WithLogger sets the session logger (default: disabled).
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.log = l } }

// WithSink sets the event receiver.
func WithSink(fn Sink) Option { return func(s *Session) { s.sink = fn } }

// Session holds the state of one play-through. The zero value is not usable;
// create sessions with NewSession.
type Session struct {
	mu    sync.Mutex
	dict  Dictionary
	sched timer.Scheduler
	log   zerolog.Logger
	sink  Sink

	gen       uint64 // bumped on Start and Reset
	state     State
	mode      ModeConfig
	grid      *Grid
	secret    string // canonical form, revealed at the end
	secretKey string // normalized form used for evaluation
	revealed  []Reveal
	keys      map[string]LetterStatus
	countdown *timer.Controller

	pending  []Event
	flushing bool
}

// NewSession returns a session in the ready state.
func NewSession(dict Dictionary, opts ...Option) *Session {
	s := &Session{
		dict:  dict,
		sched: timer.TickerScheduler{},
		log:   zerolog.Nop(),
		state: StateReady,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start begins a game. It fails with ErrAlreadyStarted unless the session is
// ready, and with an error wrapping ErrConfiguration when cfg or the
// dictionary cannot produce a game; the session then stays ready.
func (s *Session) Start(cfg ModeConfig) error {
	s.mu.Lock()
	err := s.startLocked(cfg)
	s.mu.Unlock()
	s.flush()
	return err
}

func (s *Session) startLocked(cfg ModeConfig) error {
	if s.state != StateReady {
		return ErrAlreadyStarted
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.dict == nil {
		return fmt.Errorf("%w: no dictionary", ErrConfiguration)
	}
	secret, err := s.dict.PickSecret(cfg.Cols)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	s.gen++
	gen := s.gen
	var countdown *timer.Controller
	if cfg.Timer != nil {
		countdown, err = timer.New(cfg.Timer.Total, s.sched, timer.Listener{
			OnTick:    func(remaining, total time.Duration) { s.onTick(gen, remaining, total) },
			OnExpired: func() { s.onExpired(gen) },
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	s.mode = cfg
	s.grid = NewGrid(cfg.Rows, cfg.Cols)
	s.secret = secret
	s.secretKey = s.dict.Normalize(secret)
	s.revealed = nil
	s.keys = make(map[string]LetterStatus)
	s.countdown = countdown
	s.state = StateInProgress
	if countdown != nil {
		countdown.Start()
	}

	s.log.Debug().
		Str("mode", cfg.Name).
		Int("rows", cfg.Rows).
		Int("cols", cfg.Cols).
		Bool("timed", cfg.Timed()).
		Msg("game started")
	return nil
}

// SubmitLetter types r at the cursor. Ignored unless in progress, when r is
// not a letter, or when the row is full.
func (s *Session) SubmitLetter(r rune) {
	s.mu.Lock()
	s.letterLocked(r)
	s.mu.Unlock()
	s.flush()
}

func (s *Session) letterLocked(r rune) {
	if s.state != StateInProgress || !unicode.IsLetter(r) {
		return
	}
	r = unicode.ToLower(r)
	row, col := s.grid.Row(), s.grid.Col()
	if s.grid.InsertLetter(r) {
		s.emit(LetterEntered{Row: row, Col: col, Letter: string(r)})
	}
}

// Backspace removes the last typed letter of the current row.
func (s *Session) Backspace() {
	s.mu.Lock()
	s.backspaceLocked()
	s.mu.Unlock()
	s.flush()
}

func (s *Session) backspaceLocked() {
	if s.state != StateInProgress {
		return
	}
	if s.grid.DeleteLetter() {
		s.emit(LetterRemoved{Row: s.grid.Row(), Col: s.grid.Col()})
	}
}

// SubmitGuess submits the current row. No-op unless in progress with a full row.
func (s *Session) SubmitGuess() {
	s.mu.Lock()
	s.guessLocked()
	s.mu.Unlock()
	s.flush()
}

func (s *Session) guessLocked() {
	if s.state != StateInProgress || !s.grid.IsRowFull() {
		return
	}
	row := s.grid.Row()
	text := s.grid.CurrentRowText()
	if !s.dict.IsValid(text) {
		s.emit(InvalidGuess{Row: row, Message: MsgNotInDictionary})
		return
	}

	key := s.dict.Normalize(text)
	result := Evaluate(key, s.secretKey)
	s.revealed = append(s.revealed, Reveal{Guess: text, Result: result})
	s.markKeys(key, result)
	s.emit(RowRevealed{Row: row, Guess: text, Result: result})

	switch {
	case result.Winner:
		s.finishLocked(StateWon)
		s.emit(GameWon{Secret: s.secret, Attempts: row + 1})
	case row == s.grid.Rows()-1:
		s.finishLocked(StateLost)
		s.emit(GameLost{Secret: s.secret, Reason: LostOutOfRows})
	default:
		if err := s.grid.AdvanceRow(); err != nil {
			s.log.Error().Err(err).Int("row", row).Msg("advance row")
		}
	}
}

// SubmitKey dispatches a key name the way a keyboard handler would:
// "Enter" submits, "Backspace" deletes and a single letter is typed.
// Anything else is ignored.
func (s *Session) SubmitKey(key string) {
	switch key {
	case "Enter":
		s.SubmitGuess()
	case "Backspace":
		s.Backspace()
	default:
		if utf8.RuneCountInString(key) != 1 {
			return
		}
		r, _ := utf8.DecodeRuneInString(key)
		s.SubmitLetter(r)
	}
}

// Reset cancels any countdown, discards the game and returns to ready.
// Safe in any state.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.countdown != nil {
		s.countdown.Reset()
	}
	prev := s.state
	s.gen++
	s.state = StateReady
	s.mode = ModeConfig{}
	s.grid = nil
	s.secret, s.secretKey = "", ""
	s.revealed = nil
	s.keys = nil
	s.countdown = nil
	s.mu.Unlock()
	s.flush()

	s.log.Debug().Str("from", string(prev)).Msg("session reset")
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Mode:     s.mode.Name,
		Revealed: append([]Reveal(nil), s.revealed...),
		Keys:     make(map[string]LetterStatus, len(s.keys)),
	}
	for k, v := range s.keys {
		snap.Keys[k] = v
	}
	if s.grid != nil {
		snap.Rows, snap.Cols = s.grid.Rows(), s.grid.Cols()
		snap.Grid = s.grid.Cells()
		snap.Row, snap.Col = s.grid.Row(), s.grid.Col()
	}
	if s.countdown != nil {
		st := s.countdown.State()
		snap.Timer = &TimerSnapshot{
			RemainingMs:  st.Remaining.Milliseconds(),
			TotalMs:      st.Total.Milliseconds(),
			Running:      st.Running,
			ShowProgress: s.mode.ShowProgress,
		}
	}
	if s.state.Terminal() {
		snap.Secret = s.secret
	}
	return snap
}

// onTick forwards a countdown tick for the game armed at gen.
func (s *Session) onTick(gen uint64, remaining, total time.Duration) {
	s.mu.Lock()
	if gen == s.gen && s.state == StateInProgress {
		s.emit(TimerTick{RemainingMs: remaining.Milliseconds(), TotalMs: total.Milliseconds()})
	}
	s.mu.Unlock()
	s.flush()
}

// onExpired ends the game armed at gen, whatever the grid looks like.
func (s *Session) onExpired(gen uint64) {
	s.mu.Lock()
	if gen == s.gen && s.state == StateInProgress {
		s.emit(TimerExpired{})
		s.finishLocked(StateLost)
		s.emit(GameLost{Secret: s.secret, Reason: LostTimeout})
	}
	s.mu.Unlock()
	s.flush()
}

// finishLocked stops the countdown and moves to a terminal state.
func (s *Session) finishLocked(st State) {
	if s.countdown != nil {
		s.countdown.Pause()
	}
	s.state = st
	s.log.Info().
		Str("mode", s.mode.Name).
		Str("state", string(st)).
		Int("attempts", len(s.revealed)).
		Msg("game over")
}

// markKeys keeps the best status seen for every guessed letter.
func (s *Session) markKeys(guess string, result GuessResult) {
	for i, r := range []rune(guess) {
		if i >= len(result.Statuses) {
			break
		}
		k := string(r)
		if st := result.Statuses[i]; st.rank() > s.keys[k].rank() {
			s.keys[k] = st
		}
	}
}

func (s *Session) emit(ev Event) {
	s.pending = append(s.pending, ev)
}

// flush delivers queued events outside the lock. Only one goroutine drains
// at a time; a re-entrant or concurrent caller leaves the work to it.
func (s *Session) flush() {
	s.mu.Lock()
	if s.sink == nil {
		s.pending = nil
		s.mu.Unlock()
		return
	}
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	for len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		s.mu.Unlock()
		s.sink(ev)
		s.mu.Lock()
	}
	s.flushing = false
	s.mu.Unlock()
}
