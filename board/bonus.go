package board

import "fmt"

// Bonus is the premium kind of a board square. It is a closed set; the
// Multiplier switch below is exhaustive over it.
type Bonus uint8

const (
	NoBonus Bonus = iota
	DoubleLetter
	TripleLetter
	DoubleWord
	TripleWord
)

// Layout runes, matching the classic plaintext board notation.
const (
	runeTripleWord   = '='
	runeDoubleWord   = '-'
	runeTripleLetter = '"'
	runeDoubleLetter = '\''
	runeNoBonus      = ' '
)

func bonusFromRune(r rune) (Bonus, error) {
	switch r {
	case runeNoBonus:
		return NoBonus, nil
	case runeDoubleLetter:
		return DoubleLetter, nil
	case runeTripleLetter:
		return TripleLetter, nil
	case runeDoubleWord:
		return DoubleWord, nil
	case runeTripleWord:
		return TripleWord, nil
	}
	return NoBonus, fmt.Errorf("unknown bonus rune %q in board layout", r)
}

// Multiplier is the factor a square contributes to the score of a play that
// covers it. Letter and word bonuses both feed the same combined product.
func (b Bonus) Multiplier() int {
	switch b {
	case NoBonus:
		return 1
	case DoubleLetter, DoubleWord:
		return 2
	case TripleLetter, TripleWord:
		return 3
	}
	return 1
}

func (b Bonus) String() string {
	switch b {
	case DoubleLetter:
		return "letter×2"
	case TripleLetter:
		return "letter×3"
	case DoubleWord:
		return "word×2"
	case TripleWord:
		return "word×3"
	}
	return "none"
}

func (b Bonus) rune() rune {
	switch b {
	case DoubleLetter:
		return runeDoubleLetter
	case TripleLetter:
		return runeTripleLetter
	case DoubleWord:
		return runeDoubleWord
	case TripleWord:
		return runeTripleWord
	}
	return runeNoBonus
}
