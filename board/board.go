// Package board implements the fixed rectangular game board: a grid of
// squares with premium markings, each of which can hold at most one stone
// for the remainder of the game.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/aracataca/tiles"
)

// ErrSquareOccupied is returned when a stone is placed on a square that
// already holds one. Placement is permanent; a square's occupant is set at
// most once.
var ErrSquareOccupied = errors.New("square is already occupied")

// Pos is a board coordinate.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// A Square is a single square in a game board. It carries its bonus marking,
// if any, and its occupying stone, if any.
type Square struct {
	bonus Bonus
	stone *tiles.Stone
}

func (s *Square) Bonus() Bonus {
	return s.bonus
}

func (s *Square) Stone() *tiles.Stone {
	return s.stone
}

func (s *Square) IsEmpty() bool {
	return s.stone == nil
}

// A GameBoard is the main board structure. It owns all of its squares; its
// dimensions are fixed for the lifetime of the game.
type GameBoard struct {
	squares      [][]*Square
	rows         int
	cols         int
	stonesPlayed int
}

// MakeBoard turns an array of layout strings into a GameBoard. Every row
// must be the same width, and every rune must be a known bonus marking.
func MakeBoard(desc []string) (*GameBoard, error) {
	if len(desc) == 0 {
		return nil, errors.New("board layout is empty")
	}
	cols := len([]rune(desc[0]))
	rows := [][]*Square{}
	for i, s := range desc {
		runes := []rune(s)
		if len(runes) != cols {
			return nil, fmt.Errorf("board layout row %d has width %d, want %d",
				i, len(runes), cols)
		}
		row := []*Square{}
		for _, c := range runes {
			bonus, err := bonusFromRune(c)
			if err != nil {
				return nil, err
			}
			row = append(row, &Square{bonus: bonus})
		}
		rows = append(rows, row)
	}
	return &GameBoard{squares: rows, rows: len(rows), cols: cols}, nil
}

func (g *GameBoard) Rows() int {
	return g.rows
}

func (g *GameBoard) Cols() int {
	return g.cols
}

// Center is the designated starting square; the first play of a game must
// cover it.
func (g *GameBoard) Center() Pos {
	return Pos{Row: g.rows / 2, Col: g.cols / 2}
}

func (g *GameBoard) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *GameBoard) SquareAt(p Pos) *Square {
	return g.squares[p.Row][p.Col]
}

// HasStone reports whether the square at p holds a stone. Out-of-bounds
// positions hold nothing.
func (g *GameBoard) HasStone(p Pos) bool {
	return g.InBounds(p) && !g.squares[p.Row][p.Col].IsEmpty()
}

// IsEmpty returns if the board is empty.
func (g *GameBoard) IsEmpty() bool {
	return g.stonesPlayed == 0
}

// StonesPlayed is the number of stones currently on the board.
func (g *GameBoard) StonesPlayed() int {
	return g.stonesPlayed
}

// PlaceStone sets the occupant of the square at p, permanently. Callers are
// expected to have validated the position first.
func (g *GameBoard) PlaceStone(p Pos, st *tiles.Stone) error {
	if !g.InBounds(p) {
		return fmt.Errorf("position %v is out of bounds", p)
	}
	sq := g.squares[p.Row][p.Col]
	if !sq.IsEmpty() {
		return ErrSquareOccupied
	}
	sq.stone = st
	g.stonesPlayed++
	return nil
}

// HasAdjacentStone reports whether any orthogonal neighbor of p holds a
// stone.
func (g *GameBoard) HasAdjacentStone(p Pos) bool {
	return g.HasStone(Pos{p.Row - 1, p.Col}) ||
		g.HasStone(Pos{p.Row + 1, p.Col}) ||
		g.HasStone(Pos{p.Row, p.Col - 1}) ||
		g.HasStone(Pos{p.Row, p.Col + 1})
}

// ToDisplayText produces a console representation of the board.
func (g *GameBoard) ToDisplayText() string {
	var str string
	row := "   "
	for i := 0; i < g.cols; i++ {
		row = row + fmt.Sprintf("%c", 'A'+i) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", g.cols*2) + "\n"
	for i := 0; i < g.rows; i++ {
		row := fmt.Sprintf("%2d|", i+1)
		for j := 0; j < g.cols; j++ {
			row = row + g.squares[i][j].displayString() + " "
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", g.cols*2) + "\n"
	return "\n" + str
}

func (s *Square) displayString() string {
	if s.stone != nil {
		return string(s.stone.Letter)
	}
	if s.bonus == NoBonus {
		return "."
	}
	return string(s.bonus.rune())
}
