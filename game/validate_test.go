package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/aracataca/board"
	"github.com/domino14/aracataca/lexicon"
	"github.com/domino14/aracataca/tiles"
)

// newRunningGame builds a running game with fixed racks and an empty bag,
// so tests are fully deterministic.
func newRunningGame(t *testing.T, dict lexicon.Dictionary, racks ...[]*tiles.Stone) *Game {
	t.Helper()
	b, err := board.MakeBoard(board.CrosswordGameBoard)
	if err != nil {
		t.Fatal(err)
	}
	g := &Game{
		id:    "testgame",
		owner: "p1",
		state: StateRunning,
		rules: Rules{Layout: board.CrosswordGameBoard, MaxPlayers: 4},
		board: b,
		dict:  dict,
	}
	total := 0
	for i, rack := range racks {
		id := fmt.Sprintf("p%d", i+1)
		p := newPlayerState(PlayerInfo{ID: id, Nickname: id})
		p.rack = rack
		p.status = StatusActive
		g.players = append(g.players, p)
		g.queue.push(id)
		total += len(rack)
	}
	g.bag = tiles.RestoreBag(nil, total)
	g.queue.next()
	return g
}

func word(startID int, letters string) []*tiles.Stone {
	ld, err := tiles.EnglishLetterDistribution()
	if err != nil {
		panic(err)
	}
	stones := make([]*tiles.Stone, 0, len(letters))
	for i, r := range letters {
		stones = append(stones, &tiles.Stone{ID: startID + i, Letter: r, Value: ld.Score(r)})
	}
	return stones
}

func across(stones []*tiles.Stone, row, col int) []Placement {
	pls := make([]Placement, len(stones))
	for i, st := range stones {
		pls[i] = Placement{StoneID: st.ID, Pos: board.Pos{Row: row, Col: col + i}}
	}
	return pls
}

func down(stones []*tiles.Stone, row, col int) []Placement {
	pls := make([]Placement, len(stones))
	for i, st := range stones {
		pls[i] = Placement{StoneID: st.ID, Pos: board.Pos{Row: row + i, Col: col}}
	}
	return pls
}

func violationOf(t *testing.T, err error) Violation {
	t.Helper()
	var pe *PlayError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a PlayError, got %v", err)
	}
	return pe.Violation
}

func TestFirstPlayMustCoverCenter(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	rack := word(0, "AB")
	g := newRunningGame(t, lexicon.AcceptAll{}, rack, word(10, "CD"))

	_, err := g.PlaceStones(ctx, "p1", across(rack, 7, 5))
	is.Equal(violationOf(t, err), MustCoverCenter)
	is.True(g.board.IsEmpty())
	is.Equal(len(g.players[0].rack), 2) // rejected play left the rack alone

	res, err := g.PlaceStones(ctx, "p1", across(rack, 7, 6))
	is.NoErr(err)
	is.Equal(res.Words, []string{"AB"})
	is.Equal(g.board.StonesPlayed(), 2)
}

func TestPlacementGeometryViolations(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		pls  func(rack []*tiles.Stone) []Placement
		want Violation
	}{
		{
			"out of bounds",
			func(rack []*tiles.Stone) []Placement {
				return across(rack, 7, 14)
			},
			OutOfBounds,
		},
		{
			"negative coords",
			func(rack []*tiles.Stone) []Placement {
				return []Placement{{StoneID: rack[0].ID, Pos: board.Pos{Row: -1, Col: 0}},
					{StoneID: rack[1].ID, Pos: board.Pos{Row: 0, Col: 0}}}
			},
			OutOfBounds,
		},
		{
			"not a line",
			func(rack []*tiles.Stone) []Placement {
				return []Placement{{StoneID: rack[0].ID, Pos: board.Pos{Row: 7, Col: 7}},
					{StoneID: rack[1].ID, Pos: board.Pos{Row: 8, Col: 8}}}
			},
			InvalidShape,
		},
		{
			"duplicate square",
			func(rack []*tiles.Stone) []Placement {
				return []Placement{{StoneID: rack[0].ID, Pos: board.Pos{Row: 7, Col: 7}},
					{StoneID: rack[1].ID, Pos: board.Pos{Row: 7, Col: 7}}}
			},
			CellOccupied,
		},
		{
			"gap in word",
			func(rack []*tiles.Stone) []Placement {
				return []Placement{{StoneID: rack[0].ID, Pos: board.Pos{Row: 7, Col: 7}},
					{StoneID: rack[1].ID, Pos: board.Pos{Row: 7, Col: 9}}}
			},
			DiscontinuousWord,
		},
		{
			"no stones",
			func(rack []*tiles.Stone) []Placement { return nil },
			InvalidShape,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rack := word(0, "AB")
			g := newRunningGame(t, lexicon.AcceptAll{}, rack, word(10, "CD"))
			_, err := g.PlaceStones(ctx, "p1", tc.pls(rack))
			assert.Equal(t, tc.want, violationOf(t, err))
			assert.True(t, g.board.IsEmpty())
		})
	}
}

func TestOccupiedSquareRejected(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	r1 := word(0, "AB")
	r2 := word(10, "CD")
	g := newRunningGame(t, lexicon.AcceptAll{}, r1, r2)

	_, err := g.PlaceStones(ctx, "p1", across(r1, 7, 6))
	is.NoErr(err)

	_, err = g.PlaceStones(ctx, "p2", across(r2, 7, 7))
	is.Equal(violationOf(t, err), CellOccupied)
}

func TestDisconnectedPlayRejected(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	r1 := word(0, "AB")
	r2 := word(10, "CD")
	g := newRunningGame(t, lexicon.AcceptAll{}, r1, r2)

	_, err := g.PlaceStones(ctx, "p1", across(r1, 7, 6))
	is.NoErr(err)

	before := g.players[1].rackCopy()
	_, err = g.PlaceStones(ctx, "p2", across(r2, 0, 0))
	is.Equal(violationOf(t, err), DisconnectedPlay)
	// zero observable side effects
	is.Equal(g.players[1].rackCopy(), before)
	is.Equal(g.board.StonesPlayed(), 2)
	is.Equal(g.CurrentPlayerID(), "p2")
}

func TestInvalidWordRejectionIsAtomic(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	dict, err := lexicon.ScanWordList(strings.NewReader("AB\n"))
	is.NoErr(err)

	rack := word(0, "BA")
	g := newRunningGame(t, dict, rack, word(10, "CD"))

	_, perr := g.PlaceStones(ctx, "p1", across(rack, 7, 7))
	var pe *PlayError
	is.True(errors.As(perr, &pe))
	is.Equal(pe.Violation, InvalidWord)
	is.Equal(pe.Word, "BA")

	// no stones moved from rack to board
	is.True(g.board.IsEmpty())
	is.Equal(len(g.players[0].rack), 2)
	score, _ := g.Score("p1")
	is.Equal(score, 0)
}

func TestSecondaryWordsChecked(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	// AB is a word; the vertical cross BO is not in the list, so the play
	// forming it must be rejected, naming BO.
	dict, err := lexicon.ScanWordList(strings.NewReader("AB\nOX\n"))
	is.NoErr(err)

	r1 := word(0, "AB")
	r2 := word(10, "OX")
	g := newRunningGame(t, dict, r1, r2)

	_, err = g.PlaceStones(ctx, "p1", across(r1, 7, 6))
	is.NoErr(err)

	// OX played under B forms OX horizontally? No: place O at (8,7) and X
	// at (8,8): the primary word is OX, and O sits under B forming BO.
	_, perr := g.PlaceStones(ctx, "p2", across(r2, 8, 7))
	var pe *PlayError
	is.True(errors.As(perr, &pe))
	is.Equal(pe.Violation, InvalidWord)
	is.Equal(pe.Word, "BO")
	is.Equal(g.board.StonesPlayed(), 2)
}

func TestPlayThroughExistingStones(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	dict, err := lexicon.ScanWordList(strings.NewReader("AB\nABS\n"))
	is.NoErr(err)

	r1 := word(0, "AB")
	r2 := word(10, "S")
	g := newRunningGame(t, dict, r1, r2)

	_, err = g.PlaceStones(ctx, "p1", across(r1, 7, 6))
	is.NoErr(err)

	res, err := g.PlaceStones(ctx, "p2", across(r2, 7, 8))
	is.NoErr(err)
	is.Equal(res.Words, []string{"ABS"})
	// only the new stone scores; (7,8) carries no bonus
	is.Equal(res.Points, 1)
}

func TestHookWordBelowExisting(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	dict, err := lexicon.ScanWordList(strings.NewReader("AB\nBO\n"))
	is.NoErr(err)

	r1 := word(0, "AB")
	r2 := word(10, "O")
	g := newRunningGame(t, dict, r1, r2)

	_, err = g.PlaceStones(ctx, "p1", across(r1, 7, 6))
	is.NoErr(err)

	// single stone under the B extends vertically
	res, err := g.PlaceStones(ctx, "p2", down(r2, 8, 7))
	is.NoErr(err)
	is.Equal(res.Words, []string{"BO"})
}

func TestBlankPlaysAsDesignatedLetter(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	dict, err := lexicon.ScanWordList(strings.NewReader("AB\n"))
	is.NoErr(err)

	blank := &tiles.Stone{ID: 5, Letter: tiles.Blank, Value: 0}
	a := &tiles.Stone{ID: 6, Letter: 'A', Value: 1}
	g := newRunningGame(t, dict, []*tiles.Stone{a, blank}, word(10, "CD"))

	res, err := g.PlaceStones(ctx, "p1", []Placement{
		{StoneID: a.ID, Pos: board.Pos{Row: 7, Col: 7}},
		{StoneID: blank.ID, Pos: board.Pos{Row: 7, Col: 8}, BlankAs: 'B'},
	})
	is.NoErr(err)
	is.Equal(res.Words, []string{"AB"})
	// the blank scores zero, the center doubles: 1 × 2
	is.Equal(res.Points, 2)
	is.Equal(g.board.SquareAt(board.Pos{Row: 7, Col: 8}).Stone().Letter, 'B')
}

func TestDictionaryFailureRejectsPlay(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	rack := word(0, "AB")
	g := newRunningGame(t, failingDict{}, rack, word(10, "CD"))

	_, err := g.PlaceStones(ctx, "p1", across(rack, 7, 7))
	is.Equal(violationOf(t, err), InvalidWord)
	is.True(g.board.IsEmpty())
	is.Equal(len(g.players[0].rack), 2)
}

type failingDict struct{}

func (failingDict) HasWord(ctx context.Context, word string) (bool, error) {
	return false, context.DeadlineExceeded
}
