package solver

import (
	"math/rand/v2"
	"sort"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Heuristic ranks probe words by how many untried letters they cover and
// picks one of the top few at random. The generator is injected so a seeded
// simulation is reproducible.
type Heuristic struct {
	Opening game.Word
	Rand    *rand.Rand
	TopN    int
}

// NewHeuristic returns a heuristic guesser drawing from the top 5 probes.
func NewHeuristic(opening game.Word, rng *rand.Rand) *Heuristic {
	return &Heuristic{Opening: opening, Rand: rng, TopN: 5}
}

// Guess implements Guesser.
func (h *Heuristic) Guess(st State) (game.Word, error) {
	if st.Attempt <= 1 {
		return h.Opening, nil
	}
	if st.Candidates.Empty() {
		return game.Word{}, ErrNoCandidates
	}
	if w, ok := exploit(st); ok {
		return w, nil
	}

	type ranked struct {
		word      game.Word
		untried   int
		hasYellow bool
	}
	words := make([]ranked, 0, st.Probes.Len())
	st.Probes.Each(func(w game.Word) bool {
		r := ranked{word: w}
		var seen uint32
		for _, c := range w {
			bit := uint32(1) << (c - 'A')
			if seen&bit == 0 && !st.Knowledge.Guessed(c) {
				r.untried++
			}
			seen |= bit
			if st.Knowledge.Letter(c).State == game.LetterPresent {
				r.hasYellow = true
			}
		}
		words = append(words, r)
		return true
	})
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].untried != words[j].untried {
			return words[i].untried > words[j].untried
		}
		return words[i].hasYellow && !words[j].hasYellow
	})

	n := h.TopN
	if n <= 0 || n > len(words) {
		n = len(words)
	}
	if h.Rand == nil {
		return words[0].word, nil
	}
	return words[h.Rand.IntN(n)].word, nil
}
