// internal/game/engine.go
//
// Guess evaluation.
//
// Evaluate is a pure function implementing the two-pass scoring algorithm:
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Every secret letter that was not matched goes into the remaining pool.
//
// Pass 2:
//   - For each non-correct guess letter: if the pool still holds that letter,
//     mark it present and take one out; otherwise mark it absent.
//
// Consuming the pool is what keeps repeated letters honest: a letter is never
// reported correct or present more times than it occurs in the secret.

package game

import (
	"strings"
)

// Evaluate scores guess against secret, case-insensitively, rune by rune.
// The result always has one status per secret rune; a guess of a different
// length is all absent and never a winner.
func Evaluate(guess, secret string) GuessResult {
	g := []rune(strings.ToLower(guess))
	s := []rune(strings.ToLower(secret))
	n := len(s)
	res := GuessResult{Statuses: make([]LetterStatus, n)}
	if len(g) != n {
		for i := range res.Statuses {
			res.Statuses[i] = StatusAbsent
		}
		return res
	}

	pool := make(map[rune]int, n)
	for i := 0; i < n; i++ {
		if g[i] == s[i] {
			res.Statuses[i] = StatusCorrect
		} else {
			pool[s[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res.Statuses[i] == StatusCorrect {
			continue
		}
		if pool[g[i]] > 0 {
			res.Statuses[i] = StatusPresent
			pool[g[i]]--
		} else {
			res.Statuses[i] = StatusAbsent
		}
	}

	res.Winner = n > 0 && allCorrect(res.Statuses)
	return res
}

// allCorrect returns true if every status is StatusCorrect.
func allCorrect(st []LetterStatus) bool {
	for _, x := range st {
		if x != StatusCorrect {
			return false
		}
	}
	return true
}
