package game

import (
	"github.com/samber/lo"

	"github.com/domino14/aracataca/board"
	"github.com/domino14/aracataca/tiles"
)

// scorePlay computes the points for one play: the sum of the placed stones'
// values multiplied by the product of every newly covered square's bonus
// factor. Letter and word bonuses both feed the single combined product;
// that is this game's rule, deliberately different from the traditional
// per-letter application.
func scorePlay(stones []*tiles.Stone, covered []*board.Square) int {
	sum := lo.SumBy(stones, func(s *tiles.Stone) int { return s.Value })
	multiplier := 1
	for _, sq := range covered {
		multiplier *= sq.Bonus().Multiplier()
	}
	return sum * multiplier
}
