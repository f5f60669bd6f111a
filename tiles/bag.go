package tiles

import (
	"errors"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// ErrBagEmpty is returned when a draw is attempted on an empty bag. It is
// informational: callers treat it as "no more stones to deal," not as a
// failure of the game.
var ErrBagEmpty = errors.New("bag is empty")

// A Bag is the bag o'stones: the shared pool every player draws from. All
// mutation must be serialized by the owning game.
type Bag struct {
	stones       []*Stone
	initialCount int
}

// NewBag mints a full stone set from the distribution and puts every stone
// in the bag.
func NewBag(ld *LetterDistribution) *Bag {
	stones := ld.MakeStones()
	return &Bag{stones: stones, initialCount: len(stones)}
}

// RestoreBag rebuilds a bag from persisted contents. initialCount is the
// size of the stone set minted at game creation, not the current count.
func RestoreBag(stones []*Stone, initialCount int) *Bag {
	return &Bag{stones: stones, initialCount: initialCount}
}

// DrawOne removes and returns one stone chosen uniformly at random over the
// bag's current contents. frand draws over [0, n), so the index can never go
// negative.
func (b *Bag) DrawOne() (*Stone, error) {
	n := len(b.stones)
	if n == 0 {
		return nil, ErrBagEmpty
	}
	idx := frand.Intn(n)
	drawn := b.stones[idx]
	b.stones[idx] = b.stones[n-1]
	b.stones = b.stones[:n-1]
	return drawn, nil
}

// DrawAtMost draws at most n stones from the bag. It can draw fewer if there
// are fewer stones than n, and even draw no stones at all :o
func (b *Bag) DrawAtMost(n int) []*Stone {
	if n > len(b.stones) {
		n = len(b.stones)
	}
	drawn := make([]*Stone, 0, n)
	for i := 0; i < n; i++ {
		st, err := b.DrawOne()
		if err != nil {
			break
		}
		drawn = append(drawn, st)
	}
	return drawn
}

// PutBack puts stones back in the bag; they are immediately eligible for
// future draws.
func (b *Bag) PutBack(stones []*Stone) {
	if len(stones) == 0 {
		return
	}
	b.stones = append(b.stones, stones...)
	log.Debug().Int("returned", len(stones)).Int("in-bag", len(b.stones)).
		Msg("put stones back in bag")
}

// Contents returns the undrawn stones, in no meaningful order. Draws are
// uniform, so exposing the order leaks nothing.
func (b *Bag) Contents() []*Stone {
	out := make([]*Stone, len(b.stones))
	copy(out, b.stones)
	return out
}

// Count is the number of undrawn stones.
func (b *Bag) Count() int {
	return len(b.stones)
}

// InitialCount is the number of stones minted at bag initialization.
func (b *Bag) InitialCount() int {
	return b.initialCount
}
