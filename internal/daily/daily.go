// apps/go-solver/internal/daily/daily.go
//
// Deterministic daily secret selection.
// Every server with the same salt and answer list picks the same word for a
// given UTC date, without storing anything.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns HMAC-SHA256(salt, YYYY-MM-DD) mod answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Secret returns the date's word from answers, which must be non-empty.
func Secret(date time.Time, salt string, answers []game.Word) (game.Word, int) {
	i := WordIndex(date, salt, len(answers))
	return answers[i], i
}
