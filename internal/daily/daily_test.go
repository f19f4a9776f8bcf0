package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	assert.Equal(t, "2024-03-01", DateKey(time.Date(2024, 3, 2, 8, 0, 0, 0, loc)))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	later := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)

	i := WordIndex(day, "salt", 100)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 100)
	assert.Equal(t, i, WordIndex(later, "salt", 100), "same date, same index")
	assert.Zero(t, WordIndex(day, "salt", 0))

	// A year of dates should not collapse onto a few indexes.
	seen := map[int]bool{}
	for d := 0; d < 365; d++ {
		seen[WordIndex(day.AddDate(0, 0, d), "other", 100)] = true
	}
	assert.Greater(t, len(seen), 50)
}

func TestSecret(t *testing.T) {
	answers := []game.Word{game.MustWord("CRANE"), game.MustWord("SPEED"), game.MustWord("ABIDE")}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	w, i := Secret(day, "salt", answers)
	assert.Equal(t, answers[i], w)
	assert.Equal(t, WordIndex(day, "salt", 3), i)
}
