package game

import (
	"github.com/samber/lo"

	"github.com/domino14/aracataca/board"
	"github.com/domino14/aracataca/lexicon"
	"github.com/domino14/aracataca/tiles"
)

// StoneOnBoard is one placed stone in a snapshot.
type StoneOnBoard struct {
	Pos   board.Pos   `json:"pos"`
	Stone tiles.Stone `json:"stone"`
}

// PlayerSnapshot is one player's persisted state.
type PlayerSnapshot struct {
	PlayerInfo
	Rack   []tiles.Stone `json:"rack"`
	Points int           `json:"points"`
	Status PlayerStatus  `json:"status"`
}

// A Snapshot is a lossless, storage-agnostic copy of a whole game. The
// persistence collaborator round-trips these keyed by game id; GameState
// callers get one with the password redacted.
type Snapshot struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Owner      string          `json:"owner"`
	Password   string          `json:"password,omitempty"`
	State      State           `json:"state"`
	Layout     []string        `json:"layout"`
	MaxPlayers int             `json:"max_players"`
	BagInitial int             `json:"bag_initial"`
	Bag        []tiles.Stone   `json:"bag"`
	Board      []StoneOnBoard  `json:"board"`
	Players    []PlayerSnapshot `json:"players"`
	Queue      []string        `json:"queue"`
	Current    string          `json:"current"`
	Ledger     []LedgerEntry   `json:"ledger"`
}

// Snapshot captures the full game state. The copy shares nothing with the
// live game; callers may hold it across later mutations.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		ID:         g.id,
		Name:       g.name,
		Owner:      g.owner,
		Password:   g.password,
		State:      g.state,
		Layout:     append([]string{}, g.rules.Layout...),
		MaxPlayers: g.rules.MaxPlayers,
		BagInitial: g.bag.InitialCount(),
		Queue:      append([]string{}, g.queue.order...),
		Current:    g.queue.current,
		Ledger:     g.Ledger(),
	}
	s.Bag = g.bagContents()
	for r := 0; r < g.board.Rows(); r++ {
		for c := 0; c < g.board.Cols(); c++ {
			p := board.Pos{Row: r, Col: c}
			if g.board.HasStone(p) {
				s.Board = append(s.Board, StoneOnBoard{Pos: p, Stone: *g.board.SquareAt(p).Stone()})
			}
		}
	}
	s.Players = lo.Map(g.players, func(p *playerState, _ int) PlayerSnapshot {
		return PlayerSnapshot{
			PlayerInfo: p.PlayerInfo,
			Rack: lo.Map(p.rack, func(st *tiles.Stone, _ int) tiles.Stone {
				return *st
			}),
			Points: p.points,
			Status: p.status,
		}
	})
	return s
}

// FromSnapshot rebuilds a live game from a persisted snapshot. The
// dictionary is a runtime collaborator and is re-attached here rather than
// persisted.
func FromSnapshot(s *Snapshot, dict lexicon.Dictionary) (*Game, error) {
	b, err := board.MakeBoard(s.Layout)
	if err != nil {
		return nil, err
	}
	for _, sb := range s.Board {
		st := sb.Stone
		if err := b.PlaceStone(sb.Pos, &st); err != nil {
			return nil, err
		}
	}
	bagStones := make([]*tiles.Stone, len(s.Bag))
	for i := range s.Bag {
		st := s.Bag[i]
		bagStones[i] = &st
	}
	g := &Game{
		id:       s.ID,
		name:     s.Name,
		owner:    s.Owner,
		password: s.Password,
		state:    s.State,
		rules: Rules{
			Layout:     s.Layout,
			Dictionary: dict,
			MaxPlayers: s.MaxPlayers,
		},
		board:  b,
		bag:    tiles.RestoreBag(bagStones, s.BagInitial),
		dict:   dict,
		ledger: append([]LedgerEntry{}, s.Ledger...),
		queue: turnQueue{
			order:   append([]string{}, s.Queue...),
			current: s.Current,
		},
	}
	g.players = lo.Map(s.Players, func(ps PlayerSnapshot, _ int) *playerState {
		p := newPlayerState(ps.PlayerInfo)
		for i := range ps.Rack {
			st := ps.Rack[i]
			p.rack = append(p.rack, &st)
		}
		p.points = ps.Points
		p.status = ps.Status
		return p
	})
	return g, nil
}

func (g *Game) bagContents() []tiles.Stone {
	out := make([]tiles.Stone, 0, g.bag.Count())
	for _, st := range g.bag.Contents() {
		out = append(out, *st)
	}
	return out
}
