// apps/go-solver/internal/prune/set.go
//
// Word sets for the solver.
// A Universe is an ordered, immutable word list loaded once and shared
// read-only by every game and worker. A Set is a subset of a Universe held
// as a bitset over word indexes, so filtering a set allocates one bitset
// and iteration always follows universe order.

package prune

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Universe is an ordered list of distinct words with an index.
type Universe struct {
	words []game.Word
	index map[game.Word]uint
}

// NewUniverse builds a universe from words, dropping duplicates and keeping
// the first occurrence's position.
func NewUniverse(words []game.Word) *Universe {
	u := &Universe{
		words: make([]game.Word, 0, len(words)),
		index: make(map[game.Word]uint, len(words)),
	}
	for _, w := range words {
		if _, ok := u.index[w]; ok {
			continue
		}
		u.index[w] = uint(len(u.words))
		u.words = append(u.words, w)
	}
	return u
}

// Len returns the number of words in the universe.
func (u *Universe) Len() int { return len(u.words) }

// Words returns the universe in order. Callers must not modify it.
func (u *Universe) Words() []game.Word { return u.words }

// Index returns the position of w, if present.
func (u *Universe) Index(w game.Word) (uint, bool) {
	i, ok := u.index[w]
	return i, ok
}

// All returns the set containing every word of the universe.
func (u *Universe) All() Set {
	b := bitset.New(uint(len(u.words)))
	b.FlipRange(0, uint(len(u.words)))
	return Set{u: u, bits: b}
}

// Of returns the set of the given words; words outside the universe are ignored.
func (u *Universe) Of(words ...game.Word) Set {
	b := bitset.New(uint(len(u.words)))
	for _, w := range words {
		if i, ok := u.index[w]; ok {
			b.Set(i)
		}
	}
	return Set{u: u, bits: b}
}

// Set is an immutable subset of a Universe. Filters return new sets.
type Set struct {
	u    *Universe
	bits *bitset.BitSet
}

// Len returns the number of words in the set.
func (s Set) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// Empty reports whether the set has no words.
func (s Set) Empty() bool { return s.bits == nil || s.bits.None() }

// Contains reports whether w is in the set.
func (s Set) Contains(w game.Word) bool {
	if s.u == nil {
		return false
	}
	i, ok := s.u.index[w]
	return ok && s.bits.Test(i)
}

// Each calls fn for every word in universe order until fn returns false.
func (s Set) Each(fn func(game.Word) bool) {
	if s.bits == nil {
		return
	}
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if !fn(s.u.words[i]) {
			return
		}
	}
}

// Words returns the members in universe order.
func (s Set) Words() []game.Word {
	out := make([]game.Word, 0, s.Len())
	s.Each(func(w game.Word) bool {
		out = append(out, w)
		return true
	})
	return out
}

// First returns the earliest member in universe order.
func (s Set) First() (game.Word, bool) {
	if s.bits == nil {
		return game.Word{}, false
	}
	i, ok := s.bits.NextSet(0)
	if !ok {
		return game.Word{}, false
	}
	return s.u.words[i], true
}

// Last returns the latest member in universe order.
func (s Set) Last() (game.Word, bool) {
	if s.bits == nil {
		return game.Word{}, false
	}
	for i := len(s.u.words) - 1; i >= 0; i-- {
		if s.bits.Test(uint(i)) {
			return s.u.words[i], true
		}
	}
	return game.Word{}, false
}

// Strings returns the members as strings, mostly for logs and JSON.
func (s Set) Strings() []string {
	out := make([]string, 0, s.Len())
	s.Each(func(w game.Word) bool {
		out = append(out, w.String())
		return true
	})
	return out
}

// filter keeps the members for which keep returns true.
func (s Set) filter(keep func(game.Word) bool) Set {
	if s.bits == nil {
		return s
	}
	out := bitset.New(s.bits.Len())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if keep(s.u.words[i]) {
			out.Set(i)
		}
	}
	return Set{u: s.u, bits: out}
}

// count returns how many members satisfy keep.
func (s Set) count(keep func(game.Word) bool) int {
	if s.bits == nil {
		return 0
	}
	n := 0
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if keep(s.u.words[i]) {
			n++
		}
	}
	return n
}
