package game

import (
	"fmt"
	"time"
)

// TimerConfig enables a countdown for a mode.
type TimerConfig struct {
	Total time.Duration
}

// ModeConfig parameterizes a Session. The play modes differ only in these
// values; a nil Timer means untimed play.
type ModeConfig struct {
	Name         string
	Rows         int
	Cols         int
	Timer        *TimerConfig
	ShowProgress bool // renderer hint: draw a progress bar for the countdown
}

// Mode names.
const (
	ModeQuest     = "quest"
	ModeRace      = "race"
	ModeCountDown = "countdown"
)

const (
	defaultRows = 6
	defaultCols = 5
)

// Validate checks the dimensions and timer. Errors wrap ErrConfiguration.
func (c ModeConfig) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("%w: rows must be positive, got %d", ErrConfiguration, c.Rows)
	}
	if c.Cols <= 0 {
		return fmt.Errorf("%w: cols must be positive, got %d", ErrConfiguration, c.Cols)
	}
	if c.Timer != nil && c.Timer.Total <= 0 {
		return fmt.Errorf("%w: timer total must be positive, got %s", ErrConfiguration, c.Timer.Total)
	}
	return nil
}

// Timed reports whether the mode runs a countdown.
func (c ModeConfig) Timed() bool { return c.Timer != nil }

// Modes returns fresh copies of the built-in modes.
func Modes() []ModeConfig {
	return []ModeConfig{
		{Name: ModeQuest, Rows: defaultRows, Cols: defaultCols},
		{Name: ModeRace, Rows: defaultRows, Cols: defaultCols, Timer: &TimerConfig{Total: 3 * time.Minute}, ShowProgress: true},
		{Name: ModeCountDown, Rows: defaultRows, Cols: defaultCols, Timer: &TimerConfig{Total: time.Minute}},
	}
}

// ModeByName returns the built-in mode with the given name.
func ModeByName(name string) (ModeConfig, bool) {
	for _, m := range Modes() {
		if m.Name == name {
			return m, true
		}
	}
	return ModeConfig{}, false
}
