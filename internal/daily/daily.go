// internal/daily/daily.go
//
// Deterministic "word of the day" selection.
// Every process using the same salt picks the same secret on the same UTC date,
// which makes the daily picker a drop-in replacement for the random one.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker implements words.Picker with the date-keyed index.
type Picker struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

// Pick returns today's index in [0, n).
func (p Picker) Pick(n int) int {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return WordIndex(now(), p.Salt, n)
}
