// internal/words/words.go
//
// Dictionary of accepted words for the game engine.
//
// Responsibilities:
//   - Hold the accepted entries keyed by their normalized (case and accent folded) form.
//   - Validate guesses (IsValid) regardless of how the player typed accents.
//   - Map an accepted spelling back to its canonical, accented entry (CanonicalSecretFor).
//   - Pick a secret word of a given length through an injectable Picker.
//
// A Dictionary is immutable after New and safe for concurrent use.

package words

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrEmpty is returned when a secret is requested from a dictionary with no entries.
	ErrEmpty = errors.New("words: dictionary is empty")
	// ErrNoWordOfLength is returned when no entry has the requested normalized length.
	ErrNoWordOfLength = errors.New("words: no word of requested length")
)

// Dictionary is the read-only set of accepted words.
type Dictionary struct {
	entries []string          // canonical entries, load order, deduplicated
	byKey   map[string]string // normalized form -> canonical entry
	byLen   map[int][]string  // normalized rune length -> canonical entries
	picker  Picker
}

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithPicker sets the randomness source used by PickSecret.
func WithPicker(p Picker) Option {
	return func(d *Dictionary) {
		if p != nil {
			d.picker = p
		}
	}
}

// New builds a dictionary from raw entries.
// Entries that normalize to the same key keep the first spelling seen;
// entries with no letters or digits are skipped.
func New(entries []string, opts ...Option) *Dictionary {
	d := &Dictionary{
		byKey:  make(map[string]string, len(entries)),
		byLen:  make(map[int][]string),
		picker: CryptoPicker{},
	}
	for _, o := range opts {
		o(d)
	}
	for _, e := range entries {
		key := Normalize(e)
		if key == "" {
			continue
		}
		if _, dup := d.byKey[key]; dup {
			continue
		}
		d.byKey[key] = e
		d.entries = append(d.entries, e)
		n := utf8.RuneCountInString(key)
		d.byLen[n] = append(d.byLen[n], e)
	}
	return d
}

// Normalize folds word the same way the dictionary keys its entries.
func (d *Dictionary) Normalize(word string) string { return Normalize(word) }

// IsValid reports whether word matches an entry once both are normalized.
func (d *Dictionary) IsValid(word string) bool {
	key := Normalize(word)
	if key == "" {
		return false
	}
	_, ok := d.byKey[key]
	return ok
}

// CanonicalSecretFor returns the entry an accepted spelling resolves to,
// e.g. "piao" -> "pião". Unknown spellings are returned unchanged.
func (d *Dictionary) CanonicalSecretFor(spelling string) string {
	if e, ok := d.byKey[Normalize(spelling)]; ok {
		return e
	}
	return spelling
}

// PickSecret returns a canonical entry whose normalized form has exactly
// length runes, chosen by the dictionary's Picker.
func (d *Dictionary) PickSecret(length int) (string, error) {
	if len(d.entries) == 0 {
		return "", ErrEmpty
	}
	candidates := d.byLen[length]
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %d", ErrNoWordOfLength, length)
	}
	i := d.picker.Pick(len(candidates))
	if i < 0 || i >= len(candidates) {
		i = 0
	}
	return candidates[i], nil
}

// Len returns the number of distinct entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// Stats returns entry counts keyed by normalized length.
func (d *Dictionary) Stats() map[int]int {
	out := make(map[int]int, len(d.byLen))
	for n, list := range d.byLen {
		out[n] = len(list)
	}
	return out
}
