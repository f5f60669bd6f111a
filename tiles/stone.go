// Package tiles holds the physical pieces of the game: the lettered stones
// and the shared bag they are drawn from.
package tiles

import "fmt"

// Blank is the letter carried by a blank stone.
const Blank rune = '?'

// A Stone is a single playing piece: a letter (or a blank) and a point
// value. Stones are minted once, at bag initialization, and every stone is
// held by exactly one of the bag, a rack, or a board square for the rest of
// the game.
type Stone struct {
	ID     int  `json:"id"`
	Letter rune `json:"letter"`
	Value  int  `json:"value"`
}

func (s Stone) IsBlank() bool {
	return s.Letter == Blank
}

func (s Stone) String() string {
	return fmt.Sprintf("[%c %d]", s.Letter, s.Value)
}
