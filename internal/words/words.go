// apps/go-solver/internal/words/words.go
//
// Word list management for the solver and the game service.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the
//     embedded defaults.
//   - Build the shared, read-only solving pool (allowed ∪ answers).
//   - Act as the guess validity gate: IsAllowed, IsAnswer, RandomAnswer, Stats.
//
// Word Lists:
//   - "answers": the secret pool.
//   - "allowed": extra valid guesses (answers are always allowed too).
//
// Load behavior:
//   1. Both paths set: answers from the first, allowed from the second.
//   2. Only the allowed path set: that list serves as both.
//   3. Only the answers path set: answers are the only allowed guesses.
//   4. Neither set: embedded assets/answers.txt and assets/allowed.txt.
//
// Constraints:
//   • Lines are trimmed and uppercased; blank lines and # comments are skipped.
//   • Lines that are not exactly 5 letters A–Z are dropped and counted.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/prune"
)

var ErrNoAnswers = errors.New("words: answers list is empty")

// Dictionary is an immutable pair of word lists. It is safe for concurrent
// use once built.
type Dictionary struct {
	answers   []game.Word
	allowed   []game.Word
	pool      *prune.Universe
	answerSet map[game.Word]struct{}
}

// New builds a dictionary. The solving pool lists allowed words first, then
// answers, without duplicates.
func New(answers, allowed []game.Word) (*Dictionary, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	d := &Dictionary{
		answers:   answers,
		allowed:   allowed,
		pool:      prune.NewUniverse(append(append([]game.Word{}, allowed...), answers...)),
		answerSet: make(map[game.Word]struct{}, len(answers)),
	}
	for _, w := range answers {
		d.answerSet[w] = struct{}{}
	}
	return d, nil
}

// Load reads the lists per the rules above. Empty paths select defaults.
func Load(answersPath, allowedPath string) (*Dictionary, error) {
	var ans, allow []game.Word
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ans, err = ReadFile(answersPath); err != nil {
			return nil, err
		}
		if allow, err = ReadFile(allowedPath); err != nil {
			return nil, err
		}
	case allowedPath != "":
		if allow, err = ReadFile(allowedPath); err != nil {
			return nil, err
		}
		ans = allow
	case answersPath != "":
		if ans, err = ReadFile(answersPath); err != nil {
			return nil, err
		}
	default:
		if ans, err = embedded(assets.AnswersFile); err != nil {
			return nil, err
		}
		if allow, err = embedded(assets.AllowedFile); err != nil {
			return nil, err
		}
	}
	return New(ans, allow)
}

// ReadFile loads one word per line from path.
func ReadFile(path string) ([]game.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	out, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("words: %s: %w", path, err)
	}
	return out, nil
}

// Read parses one word per line from r.
func Read(r io.Reader) ([]game.Word, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return parse(lines), nil
}

func embedded(name string) ([]game.Word, error) {
	lines, err := assets.Lines(name)
	if err != nil {
		return nil, fmt.Errorf("words: embedded %s: %w", name, err)
	}
	return parse(lines), nil
}

// parse keeps the valid words and logs how many lines were dropped.
func parse(lines []string) []game.Word {
	out := make([]game.Word, 0, len(lines))
	skipped := 0
	for _, s := range lines {
		w, err := game.ParseWord(s)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, w)
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Int("kept", len(out)).Msg("words: dropped invalid lines")
	}
	return out
}

// Answers returns the secret pool in file order. Callers must not modify it.
func (d *Dictionary) Answers() []game.Word { return d.answers }

// Allowed returns the extra guess list as loaded. Callers must not modify it.
func (d *Dictionary) Allowed() []game.Word { return d.allowed }

// Pool returns allowed ∪ answers as the initial candidate and probe universe.
func (d *Dictionary) Pool() *prune.Universe { return d.pool }

// IsAllowed reports whether w is a valid guess (answers ∪ allowed).
func (d *Dictionary) IsAllowed(w game.Word) bool {
	_, ok := d.pool.Index(w)
	return ok
}

// IsAnswer reports whether w is in the secret pool.
func (d *Dictionary) IsAnswer(w game.Word) bool {
	_, ok := d.answerSet[w]
	return ok
}

// AnswerAt returns the i-th answer, wrapping around the list.
func (d *Dictionary) AnswerAt(i int) game.Word {
	n := len(d.answers)
	return d.answers[((i%n)+n)%n]
}

// RandomAnswer returns a cryptographically random answer.
func (d *Dictionary) RandomAnswer() game.Word {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.answers))))
	if err != nil {
		return d.answers[0]
	}
	return d.answers[n.Int64()]
}

// Stats returns counts of loaded words: (answers, allowed ∪ answers).
func (d *Dictionary) Stats() (answersCount int, allowedCount int) {
	return len(d.answers), d.pool.Len()
}
