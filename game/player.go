package game

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/aracataca/tiles"
)

// RackTileLimit is the rack size every draw refills to.
const RackTileLimit = 7

// PlayerStatus tracks a player's place in the lobby-to-play progression.
type PlayerStatus int

const (
	StatusNotReady PlayerStatus = iota
	StatusReady
	StatusActive
)

// PlayerInfo identifies a player. The IDs come from whatever account system
// sits outside the engine.
type PlayerInfo struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type playerState struct {
	PlayerInfo

	rack   []*tiles.Stone
	points int
	status PlayerStatus
}

func newPlayerState(info PlayerInfo) *playerState {
	return &playerState{
		PlayerInfo: info,
		rack:       make([]*tiles.Stone, 0, RackTileLimit),
	}
}

// drawToFill draws stones until the rack holds RackTileLimit stones or the
// bag runs out. An empty bag is not an error here.
func (p *playerState) drawToFill(bag *tiles.Bag) {
	need := RackTileLimit - len(p.rack)
	if need <= 0 {
		return
	}
	drawn := bag.DrawAtMost(need)
	p.rack = append(p.rack, drawn...)
	log.Debug().Str("player", p.Nickname).Int("drawn", len(drawn)).
		Int("rack", len(p.rack)).Msg("drew to fill rack")
}

// stonesByID resolves rack stones by ID, in the given order, without
// removing them. Duplicate IDs resolve to the same stone only once.
func (p *playerState) stonesByID(ids []int) ([]*tiles.Stone, error) {
	seen := map[int]bool{}
	stones := make([]*tiles.Stone, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, ErrStoneNotOnRack
		}
		st, ok := lo.Find(p.rack, func(s *tiles.Stone) bool { return s.ID == id })
		if !ok {
			return nil, ErrStoneNotOnRack
		}
		seen[id] = true
		stones = append(stones, st)
	}
	return stones, nil
}

// removeFromRack takes the given stones off the rack. Callers resolve the
// stones with stonesByID first, so every stone is known to be present.
func (p *playerState) removeFromRack(stones []*tiles.Stone) {
	p.rack = lo.Filter(p.rack, func(s *tiles.Stone, _ int) bool {
		return !lo.ContainsBy(stones, func(t *tiles.Stone) bool { return t.ID == s.ID })
	})
}

func (p *playerState) rackCopy() []*tiles.Stone {
	out := make([]*tiles.Stone, len(p.rack))
	copy(out, p.rack)
	return out
}

// throwRackIn returns the whole rack to the bag; used when a player leaves
// mid-game so no stones are stranded.
func (p *playerState) throwRackIn(bag *tiles.Bag) {
	log.Debug().Str("player", p.Nickname).Int("stones", len(p.rack)).
		Msg("throwing rack in")
	bag.PutBack(p.rack)
	p.rack = p.rack[:0]
}

// turnQueue is the round-robin turn order. The player returned by the most
// recent next() call is the only one permitted to act.
type turnQueue struct {
	order   []string
	current string
}

func (q *turnQueue) push(id string) {
	q.order = append(q.order, id)
}

// next returns the head of the queue, rotates it to the tail, and makes it
// the current player. This is the sole turn-advance primitive: it is called
// once at game start to establish the first mover and once after each
// completed turn.
func (q *turnQueue) next() string {
	if len(q.order) == 0 {
		q.current = ""
		return ""
	}
	head := q.order[0]
	q.order = append(q.order[1:], head)
	q.current = head
	return head
}

// remove drops a player from any position in the queue; absent players are
// a no-op. If the removed player held the turn, the turn passes to the next
// player in line without anyone being skipped.
func (q *turnQueue) remove(id string) {
	for i, pid := range q.order {
		if pid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	if q.current == id {
		q.next()
	}
}

func (q *turnQueue) len() int {
	return len(q.order)
}
