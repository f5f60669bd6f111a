// Package game encapsulates the main mechanics for a multiplayer Crossword
// Game: the board, the shared stone bag, racks, turn order, placement
// validation and scoring. A Game does not know how it is transported or
// stored; callers serialize access to it (one exclusive writer per game).
package game

import (
	"context"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/aracataca/board"
	"github.com/domino14/aracataca/lexicon"
	"github.com/domino14/aracataca/tiles"
)

// State is the lifecycle state of a game.
type State int

const (
	StateWaiting State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// DefaultMaxPlayers caps the lobby size when the rules don't say otherwise.
const DefaultMaxPlayers = 4

// Rules bundles the static collaborators a game is built from.
type Rules struct {
	Layout       []string
	Distribution *tiles.LetterDistribution
	Dictionary   lexicon.Dictionary
	MaxPlayers   int
}

// StandardRules is the classic 15×15 board with the English distribution.
func StandardRules(dict lexicon.Dictionary) (Rules, error) {
	ld, err := tiles.EnglishLetterDistribution()
	if err != nil {
		return Rules{}, err
	}
	return Rules{
		Layout:       board.CrosswordGameBoard,
		Distribution: ld,
		Dictionary:   dict,
		MaxPlayers:   DefaultMaxPlayers,
	}, nil
}

// LedgerEntry records one scored play.
type LedgerEntry struct {
	PlayerID string   `json:"player_id"`
	Words    []string `json:"words"`
	Points   int      `json:"points"`
}

// Game is the aggregate root that controls the entire business logic of one
// game: drawing, placing, exchanging, turn order and lifecycle.
type Game struct {
	id       string
	name     string
	owner    string
	password string
	state    State

	rules   Rules
	board   *board.GameBoard
	bag     *tiles.Bag
	dict    lexicon.Dictionary
	players []*playerState
	queue   turnQueue
	ledger  []LedgerEntry
}

// NewGame creates a game in the waiting state with the owner as its first
// player. Bad static setup data (empty distribution, malformed layout) is
// fatal to creation.
func NewGame(rules Rules, owner PlayerInfo, name, password string) (*Game, error) {
	if rules.Distribution == nil || rules.Distribution.NumStones() == 0 {
		return nil, tiles.ErrEmptyDistribution
	}
	b, err := board.MakeBoard(rules.Layout)
	if err != nil {
		return nil, err
	}
	if rules.MaxPlayers <= 0 {
		rules.MaxPlayers = DefaultMaxPlayers
	}
	g := &Game{
		id:       shortuuid.New(),
		name:     name,
		owner:    owner.ID,
		password: password,
		state:    StateWaiting,
		rules:    rules,
		board:    b,
		bag:      tiles.NewBag(rules.Distribution),
		dict:     rules.Dictionary,
	}
	g.addPlayerState(owner)
	log.Info().Str("game", g.id).Str("owner", owner.Nickname).
		Msg("created game")
	return g, nil
}

func (g *Game) ID() string      { return g.id }
func (g *Game) Name() string    { return g.name }
func (g *Game) OwnerID() string { return g.owner }
func (g *Game) State() State    { return g.state }

// CurrentPlayerID is the player at the head of the turn queue, the only one
// permitted to act. Empty until the game starts.
func (g *Game) CurrentPlayerID() string {
	return g.queue.current
}

func (g *Game) Board() *board.GameBoard {
	return g.board
}

func (g *Game) Ledger() []LedgerEntry {
	out := make([]LedgerEntry, len(g.ledger))
	copy(out, g.ledger)
	return out
}

func (g *Game) player(id string) (*playerState, error) {
	p, ok := lo.Find(g.players, func(p *playerState) bool { return p.ID == id })
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

func (g *Game) addPlayerState(info PlayerInfo) {
	p := newPlayerState(info)
	g.players = append(g.players, p)
	g.queue.push(info.ID)
}

// AddPlayer admits a player to the lobby. Only valid while waiting; the
// password, if the game has one, must match.
func (g *Game) AddPlayer(info PlayerInfo, password string) error {
	if g.state != StateWaiting {
		return ErrNotJoinable
	}
	if g.password != "" && g.password != password {
		return ErrWrongPassword
	}
	if _, err := g.player(info.ID); err == nil {
		return ErrNotJoinable
	}
	if len(g.players) >= g.rules.MaxPlayers {
		return ErrGameFull
	}
	g.addPlayerState(info)
	log.Info().Str("game", g.id).Str("player", info.Nickname).Msg("player joined")
	return nil
}

// MarkReady flags a lobby player as ready.
func (g *Game) MarkReady(playerID string) error {
	if g.state != StateWaiting {
		return ErrNotWaiting
	}
	p, err := g.player(playerID)
	if err != nil {
		return err
	}
	p.status = StatusReady
	return nil
}

// Start fills every rack from the bag, establishes the first mover and
// transitions the game to running. Owner only; at least two players.
func (g *Game) Start(callerID string) error {
	if g.state != StateWaiting {
		return ErrNotWaiting
	}
	if callerID != g.owner {
		return ErrNotOwner
	}
	if len(g.players) < 2 {
		return ErrTooFewPlayers
	}
	for _, p := range g.players {
		p.drawToFill(g.bag)
		p.status = StatusActive
	}
	first := g.queue.next()
	g.state = StateRunning
	log.Info().Str("game", g.id).Str("first", first).Int("players", len(g.players)).
		Msg("game started")
	return nil
}

// RemovePlayer takes a player out of the game. Valid while waiting or
// running. A departing player's stones go back to the bag, and if they held
// the turn it passes to the next player in line without penalty. If the
// owner leaves, ownership passes to the next player in join order.
func (g *Game) RemovePlayer(playerID string) error {
	if g.state == StateFinished {
		return ErrNotRunning
	}
	p, err := g.player(playerID)
	if err != nil {
		return err
	}
	p.throwRackIn(g.bag)
	g.players = lo.Filter(g.players, func(q *playerState, _ int) bool {
		return q.ID != playerID
	})
	g.queue.remove(playerID)
	if g.owner == playerID && len(g.players) > 0 {
		g.owner = g.players[0].ID
	}
	log.Info().Str("game", g.id).Str("player", p.Nickname).Msg("player left")
	if g.state == StateRunning && len(g.players) < 2 {
		g.finish()
	}
	return nil
}

// ExchangeStones swaps the given rack stones for fresh ones. Replacements
// are drawn before the old stones go back, so a player cannot immediately
// redraw what they gave up; the returned stones are eligible for every
// later draw. Completes the player's turn.
func (g *Game) ExchangeStones(ctx context.Context, playerID string, stoneIDs []int) ([]*tiles.Stone, error) {
	p, err := g.actingPlayer(playerID)
	if err != nil {
		return nil, err
	}
	stones, err := p.stonesByID(stoneIDs)
	if err != nil {
		return nil, err
	}
	p.removeFromRack(stones)
	drawn := g.bag.DrawAtMost(len(stones))
	p.rack = append(p.rack, drawn...)
	g.bag.PutBack(stones)
	p.drawToFill(g.bag)
	g.queue.next()
	log.Debug().Str("game", g.id).Str("player", p.Nickname).
		Int("exchanged", len(stones)).Msg("exchanged stones")
	return p.rackCopy(), nil
}

// actingPlayer checks that the game is running and that it is this player's
// turn.
func (g *Game) actingPlayer(playerID string) (*playerState, error) {
	if g.state != StateRunning {
		return nil, ErrNotRunning
	}
	p, err := g.player(playerID)
	if err != nil {
		return nil, err
	}
	if g.queue.current != playerID {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// End finishes the game. Owner only. Finished games accept no further
// mutation; resources are released by the registry that owns the game.
func (g *Game) End(callerID string) error {
	if g.state == StateFinished {
		return ErrNotRunning
	}
	if callerID != g.owner {
		return ErrNotOwner
	}
	g.finish()
	return nil
}

func (g *Game) finish() {
	g.state = StateFinished
	log.Info().Str("game", g.id).Msg("game finished")
}

// maybeFinish ends the game once there is nothing left to play: the bag and
// every rack are empty.
func (g *Game) maybeFinish() {
	if g.bag.Count() > 0 {
		return
	}
	if lo.EveryBy(g.players, func(p *playerState) bool { return len(p.rack) == 0 }) {
		g.finish()
	}
}

// Rack returns a copy of a player's current rack.
func (g *Game) Rack(playerID string) ([]*tiles.Stone, error) {
	p, err := g.player(playerID)
	if err != nil {
		return nil, err
	}
	return p.rackCopy(), nil
}

// Score returns a player's cumulative score.
func (g *Game) Score(playerID string) (int, error) {
	p, err := g.player(playerID)
	if err != nil {
		return 0, err
	}
	return p.points, nil
}

// StonesInPlay counts every stone the game owns, wherever it is. It equals
// the bag's initial count at all times.
func (g *Game) StonesInPlay() int {
	n := g.bag.Count() + g.board.StonesPlayed()
	for _, p := range g.players {
		n += len(p.rack)
	}
	return n
}
