package game

import "strings"

// LetterState is the accumulated certainty about one letter.
type LetterState uint8

const (
	LetterUnknown LetterState = iota
	LetterPresent
	LetterAbsent
	LetterConfirmed
)

func (s LetterState) String() string {
	switch s {
	case LetterPresent:
		return "in_wrong_place"
	case LetterAbsent:
		return "not_in_word"
	case LetterConfirmed:
		return "in_right_place"
	default:
		return "not_guessed"
	}
}

// LetterInfo tracks one letter across turns. Confirmed and Excluded are
// position bitmasks (bit i set = position i).
type LetterInfo struct {
	State     LetterState
	Confirmed uint8
	Excluded  uint8
}

// ConfirmedPositions lists the positions where the letter is known to sit.
func (l LetterInfo) ConfirmedPositions() []int { return maskPositions(l.Confirmed) }

// ExcludedPositions lists the positions the letter was reported present at,
// i.e. where it cannot be.
func (l LetterInfo) ExcludedPositions() []int { return maskPositions(l.Excluded) }

// Knowledge is the per-letter state for A–Z. It is a value: Apply returns an
// updated copy and never modifies the receiver.
type Knowledge [26]LetterInfo

// Letter returns the info for uppercase letter c.
func (k Knowledge) Letter(c byte) LetterInfo { return k[c-'A'] }

// Apply folds one guess's feedback into the knowledge.
//   - Hits confirm the letter and its position.
//   - Presents exclude the position and mark the letter present unless it
//     is already confirmed.
//   - Misses mark the letter absent only if nothing was known about it.
func (k Knowledge) Apply(fb Feedback) Knowledge {
	for _, lp := range fb.Correct {
		info := &k[lp.Letter[0]-'A']
		info.State = LetterConfirmed
		info.Confirmed |= 1 << lp.Pos
	}
	for _, lp := range fb.Present {
		info := &k[lp.Letter[0]-'A']
		info.Excluded |= 1 << lp.Pos
		if info.State != LetterConfirmed {
			info.State = LetterPresent
		}
	}
	for _, l := range fb.Absent {
		info := &k[l[0]-'A']
		if info.State == LetterUnknown {
			info.State = LetterAbsent
		}
	}
	return k
}

// Guessed reports whether letter c has appeared in any guess so far.
func (k Knowledge) Guessed(c byte) bool { return k[c-'A'].State != LetterUnknown }

// LetterGroup is a letter with the positions relevant to its category.
type LetterGroup struct {
	Letter    string `json:"letter"`
	Positions []int  `json:"positions"`
}

// Categories is the global view across all guesses.
type Categories struct {
	Confirmed []LetterGroup `json:"inRightPlace"` // positions that ARE the letter
	Present   []LetterGroup `json:"inWrongPlace"` // positions the letter CANNOT be
	Absent    []string      `json:"notInWord"`
	Untried   []string      `json:"notGuessed"`
}

// Categorize groups the 26 letters by state, alphabetically.
func (k Knowledge) Categorize() Categories {
	c := Categories{
		Confirmed: []LetterGroup{},
		Present:   []LetterGroup{},
		Absent:    []string{},
		Untried:   []string{},
	}
	for i, info := range k {
		l := string(rune('A' + i))
		switch info.State {
		case LetterConfirmed:
			c.Confirmed = append(c.Confirmed, LetterGroup{Letter: l, Positions: info.ConfirmedPositions()})
		case LetterPresent:
			c.Present = append(c.Present, LetterGroup{Letter: l, Positions: info.ExcludedPositions()})
		case LetterAbsent:
			c.Absent = append(c.Absent, l)
		default:
			c.Untried = append(c.Untried, l)
		}
	}
	return c
}

// Mask renders the known pattern so far: confirmed letters in place, '?'
// where some present letter was seen, '_' elsewhere. E.g. "_E?__".
func (k Knowledge) Mask() string {
	out := []byte(strings.Repeat("_", WordLen))
	for i, info := range k {
		if info.State != LetterConfirmed {
			continue
		}
		for _, p := range info.ConfirmedPositions() {
			out[p] = byte('A' + i)
		}
	}
	for _, info := range k {
		if info.State != LetterPresent {
			continue
		}
		for _, p := range info.ExcludedPositions() {
			if out[p] == '_' {
				out[p] = '?'
			}
		}
	}
	return string(out)
}

func maskPositions(m uint8) []int {
	out := []int{}
	for i := 0; i < WordLen; i++ {
		if m&(1<<i) != 0 {
			out = append(out, i)
		}
	}
	return out
}
