package game

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/aracataca/board"
	"github.com/domino14/aracataca/tiles"
)

// A Placement assigns one rack stone to one board position. BlankAs names
// the letter a blank stone plays as; it is ignored for lettered stones.
type Placement struct {
	StoneID int       `json:"stone_id"`
	Pos     board.Pos `json:"pos"`
	BlankAs rune      `json:"blank_as,omitempty"`
}

// PlayResult is the success payload of a placement.
type PlayResult struct {
	Words      []string       `json:"words"`
	Points     int            `json:"points"`
	TotalScore int            `json:"total_score"`
	Rack       []*tiles.Stone `json:"rack"`
}

// PlaceStones validates and commits one word placement by the current
// player. Validation runs in full before any mutation: a play that fails
// any check leaves the rack, board, bag and scores untouched. On success
// the stones transfer permanently from rack to board, the play is scored,
// the rack refills from the bag, and the turn advances.
func (g *Game) PlaceStones(ctx context.Context, playerID string, placements []Placement) (*PlayResult, error) {
	p, err := g.actingPlayer(playerID)
	if err != nil {
		return nil, err
	}
	stones, err := p.stonesByID(lo.Map(placements, func(pl Placement, _ int) int {
		return pl.StoneID
	}))
	if err != nil {
		return nil, err
	}
	words, err := g.validatePlacement(ctx, stones, placements)
	if err != nil {
		return nil, err
	}

	// Commit. Nothing below can fail: every position was validated above.
	covered := make([]*board.Square, len(placements))
	for i, pl := range placements {
		if stones[i].IsBlank() && pl.BlankAs != 0 {
			// A blank's designation is permanent once it hits the board;
			// its value stays zero.
			stones[i].Letter = pl.BlankAs
		}
		covered[i] = g.board.SquareAt(pl.Pos)
		if err := g.board.PlaceStone(pl.Pos, stones[i]); err != nil {
			// Unreachable after validation; a bug here would corrupt the
			// stone economy, so fail loudly.
			log.Error().Err(err).Str("game", g.id).Msg("placement commit failed")
			return nil, err
		}
	}
	p.removeFromRack(stones)
	pts := scorePlay(stones, covered)
	p.points += pts
	g.ledger = append(g.ledger, LedgerEntry{PlayerID: p.ID, Words: words, Points: pts})
	p.drawToFill(g.bag)
	log.Debug().Str("game", g.id).Str("player", p.Nickname).
		Strs("words", words).Int("points", pts).Msg("played word")
	g.maybeFinish()
	if g.state == StateRunning {
		g.queue.next()
	}
	return &PlayResult{
		Words:      words,
		Points:     pts,
		TotalScore: p.points,
		Rack:       p.rackCopy(),
	}, nil
}

// validatePlacement runs the placement checks in order, each mapping to a
// distinct violation, and returns the words the play forms. It performs no
// mutation.
func (g *Game) validatePlacement(ctx context.Context, stones []*tiles.Stone, placements []Placement) ([]string, error) {
	if len(placements) == 0 {
		return nil, playErr(InvalidShape)
	}

	// 1. Bounds.
	for _, pl := range placements {
		if !g.board.InBounds(pl.Pos) {
			return nil, playErr(OutOfBounds)
		}
	}

	// 2. Target squares must be unoccupied, and distinct.
	taken := map[board.Pos]bool{}
	for _, pl := range placements {
		if taken[pl.Pos] || g.board.HasStone(pl.Pos) {
			return nil, playErr(CellOccupied)
		}
		taken[pl.Pos] = true
	}

	// 3. A single row or a single column.
	horizontal := lo.EveryBy(placements, func(pl Placement) bool {
		return pl.Pos.Row == placements[0].Pos.Row
	})
	vertical := lo.EveryBy(placements, func(pl Placement) bool {
		return pl.Pos.Col == placements[0].Pos.Col
	})
	if !horizontal && !vertical {
		return nil, playErr(InvalidShape)
	}

	// Letters the board will show at each new position.
	newLetters := map[board.Pos]rune{}
	for i, pl := range placements {
		newLetters[pl.Pos] = playedLetter(stones[i], pl)
	}

	// 4. Contiguous along the line, counting stones already on the board.
	lineStep := board.Pos{Row: 0, Col: 1}
	if vertical && !horizontal {
		lineStep = board.Pos{Row: 1, Col: 0}
	}
	span := placementSpan(placements)
	for p := span.min; p != step(span.max, lineStep); p = step(p, lineStep) {
		if !taken[p] && !g.board.HasStone(p) {
			return nil, playErr(DiscontinuousWord)
		}
	}

	// 5. First play covers the center; later plays touch existing stones.
	if g.board.IsEmpty() {
		if !taken[g.board.Center()] {
			return nil, playErr(MustCoverCenter)
		}
	} else {
		connected := lo.SomeBy(placements, func(pl Placement) bool {
			return g.board.HasAdjacentStone(pl.Pos)
		})
		if !connected {
			return nil, playErr(DisconnectedPlay)
		}
	}

	// 6. Every word formed must exist.
	words := g.wordsFormed(placements, newLetters, horizontal, vertical)
	for _, w := range words {
		ok, err := g.dict.HasWord(ctx, w)
		if err != nil {
			// Could not validate; reject the play, leave state untouched.
			return nil, &PlayError{Violation: InvalidWord, Word: w}
		}
		if !ok {
			return nil, &PlayError{Violation: InvalidWord, Word: w}
		}
	}
	return words, nil
}

func playedLetter(st *tiles.Stone, pl Placement) rune {
	if st.IsBlank() && pl.BlankAs != 0 {
		return pl.BlankAs
	}
	return st.Letter
}

type span struct {
	min, max board.Pos
}

func placementSpan(placements []Placement) span {
	s := span{min: placements[0].Pos, max: placements[0].Pos}
	for _, pl := range placements[1:] {
		if pl.Pos.Row < s.min.Row || pl.Pos.Col < s.min.Col {
			s.min = pl.Pos
		}
		if pl.Pos.Row > s.max.Row || pl.Pos.Col > s.max.Col {
			s.max = pl.Pos
		}
	}
	return s
}

func step(p, dir board.Pos) board.Pos {
	return board.Pos{Row: p.Row + dir.Row, Col: p.Col + dir.Col}
}

// wordsFormed collects the primary word along the line of play plus every
// perpendicular word a new stone creates against existing stones. A single
// stone takes its primary direction from whichever axis it extends.
func (g *Game) wordsFormed(placements []Placement, newLetters map[board.Pos]rune, horizontal, vertical bool) []string {
	along := board.Pos{Row: 0, Col: 1}
	across := board.Pos{Row: 1, Col: 0}
	if vertical && !horizontal {
		along, across = across, along
	}
	if horizontal && vertical {
		// One stone; prefer the axis that actually extends a word.
		p := placements[0].Pos
		if !g.board.HasStone(step(p, negate(along))) && !g.board.HasStone(step(p, along)) &&
			(g.board.HasStone(step(p, negate(across))) || g.board.HasStone(step(p, across))) {
			along, across = across, along
		}
	}

	words := []string{g.readWord(placements[0].Pos, along, newLetters)}
	for _, pl := range placements {
		w := g.readWord(pl.Pos, across, newLetters)
		if utf8.RuneCountInString(w) > 1 {
			words = append(words, w)
		}
	}
	return words
}

func negate(p board.Pos) board.Pos {
	return board.Pos{Row: -p.Row, Col: -p.Col}
}

// readWord reads the full run of letters through p along dir, mixing stones
// already on the board with the letters being placed.
func (g *Game) readWord(p, dir board.Pos, newLetters map[board.Pos]rune) string {
	letterAt := func(q board.Pos) (rune, bool) {
		if l, ok := newLetters[q]; ok {
			return l, true
		}
		if g.board.HasStone(q) {
			return g.board.SquareAt(q).Stone().Letter, true
		}
		return 0, false
	}
	start := p
	for {
		prev := step(start, negate(dir))
		if !g.board.InBounds(prev) {
			break
		}
		if _, ok := letterAt(prev); !ok {
			break
		}
		start = prev
	}
	runes := []rune{}
	for q := start; g.board.InBounds(q); q = step(q, dir) {
		l, ok := letterAt(q)
		if !ok {
			break
		}
		runes = append(runes, l)
	}
	return string(runes)
}
