package game

// EventKind names an event; it doubles as the event name on the wire.
type EventKind string

const (
	KindLetterEntered EventKind = "letter_entered"
	KindLetterRemoved EventKind = "letter_removed"
	KindInvalidGuess  EventKind = "invalid_guess"
	KindRowRevealed   EventKind = "row_revealed"
	KindGameWon       EventKind = "game_won"
	KindGameLost      EventKind = "game_lost"
	KindTimerTick     EventKind = "timer_tick"
	KindTimerExpired  EventKind = "timer_expired"
)

// Event is emitted by a Session after each committed state change.
type Event interface {
	Kind() EventKind
}

// Sink receives events in emission order.
type Sink func(Event)

type LetterEntered struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

type LetterRemoved struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InvalidGuess carries the row so the renderer can shake it.
type InvalidGuess struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type RowRevealed struct {
	Row    int         `json:"row"`
	Guess  string      `json:"guess"`
	Result GuessResult `json:"result"`
}

type GameWon struct {
	Secret   string `json:"secret"`
	Attempts int    `json:"attempts"`
}

// Loss reasons reported in GameLost.
const (
	LostOutOfRows = "out_of_rows"
	LostTimeout   = "timeout"
)

type GameLost struct {
	Secret string `json:"secret"`
	Reason string `json:"reason"`
}

type TimerTick struct {
	RemainingMs int64 `json:"remainingMs"`
	TotalMs     int64 `json:"totalMs"`
}

type TimerExpired struct{}

func (LetterEntered) Kind() EventKind { return KindLetterEntered }
func (LetterRemoved) Kind() EventKind { return KindLetterRemoved }
func (InvalidGuess) Kind() EventKind  { return KindInvalidGuess }
func (RowRevealed) Kind() EventKind   { return KindRowRevealed }
func (GameWon) Kind() EventKind       { return KindGameWon }
func (GameLost) Kind() EventKind      { return KindGameLost }
func (TimerTick) Kind() EventKind     { return KindTimerTick }
func (TimerExpired) Kind() EventKind  { return KindTimerExpired }
