package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestKnowledgeApply(t *testing.T) {
	var k Knowledge
	k = k.Apply(Evaluate(MustWord("SALET"), MustWord("CRANE")))

	assert.Equal(t, LetterAbsent, k.Letter('S').State)
	assert.Equal(t, LetterPresent, k.Letter('A').State)
	assert.Equal(t, []int{1}, k.Letter('A').ExcludedPositions())
	assert.Equal(t, LetterPresent, k.Letter('E').State)
	assert.Equal(t, LetterUnknown, k.Letter('C').State)
	assert.Equal(t, "_?_?_", k.Mask())

	k = k.Apply(Evaluate(MustWord("CRATE"), MustWord("CRANE")))
	assert.Equal(t, LetterConfirmed, k.Letter('A').State)
	assert.Equal(t, []int{2}, k.Letter('A').ConfirmedPositions())
	assert.Equal(t, []int{1}, k.Letter('A').ExcludedPositions())
	assert.Equal(t, "CRA_E", k.Mask())
}

func TestKnowledgeNeverRegresses(t *testing.T) {
	var k Knowledge
	k = k.Apply(Evaluate(MustWord("CRATE"), MustWord("CRANE")))
	before := k

	// A later guess reporting C present elsewhere must not demote it.
	k = k.Apply(Feedback{Present: []LetterPos{{Pos: 4, Letter: "C"}}, Absent: []string{"R"}})
	assert.Equal(t, LetterConfirmed, k.Letter('C').State)
	assert.Equal(t, LetterConfirmed, k.Letter('R').State)
	assert.Equal(t, LetterConfirmed, before.Letter('C').State, "receiver must not change")
	assert.Zero(t, before.Letter('C').Excluded)
}

func TestKnowledgeDuplicateMissKeepsPresent(t *testing.T) {
	// The second E of SPEED is a miss against ABIDE, but E is still in the word.
	var k Knowledge
	k = k.Apply(Evaluate(MustWord("SPEED"), MustWord("ABIDE")))
	assert.Equal(t, LetterPresent, k.Letter('E').State)
	assert.Equal(t, LetterAbsent, k.Letter('P').State)
}

func TestKnowledgeCategorize(t *testing.T) {
	var k Knowledge
	k = k.Apply(Evaluate(MustWord("CRATE"), MustWord("CRANE")))
	got := k.Categorize()

	want := []LetterGroup{
		{Letter: "A", Positions: []int{2}},
		{Letter: "C", Positions: []int{0}},
		{Letter: "E", Positions: []int{4}},
		{Letter: "R", Positions: []int{1}},
	}
	if diff := cmp.Diff(want, got.Confirmed); diff != "" {
		t.Errorf("confirmed mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"T"}, got.Absent)
	assert.Len(t, got.Untried, 21)
	assert.Empty(t, got.Present)
}
