package game

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/aracataca/tiles"
)

// SnapshotStore is the persistence collaborator: whole-game snapshots keyed
// by game id. The engine works fine without one.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	Delete(ctx context.Context, id string) error
}

type managedGame struct {
	mu      sync.Mutex
	g       *Game
	removed bool
}

// Manager is the registry of live games and the engine's caller-facing
// surface. Every mutating operation on a game runs under that game's own
// lock, so a game has exactly one writer at a time; different games proceed
// fully in parallel. Reads take the same lock and therefore always observe
// a consistent post-mutation snapshot.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*managedGame

	rules Rules
	store SnapshotStore
}

// NewManager creates a Manager. store may be nil to run purely in memory.
func NewManager(rules Rules, store SnapshotStore) *Manager {
	return &Manager{
		games: map[string]*managedGame{},
		rules: rules,
		store: store,
	}
}

// CreateGame creates a game owned by the given player. A player may own at
// most one unfinished game at a time.
func (m *Manager) CreateGame(ctx context.Context, owner PlayerInfo, name, password string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mg := range m.games {
		mg.mu.Lock()
		dup := mg.g.OwnerID() == owner.ID && mg.g.State() != StateFinished
		mg.mu.Unlock()
		if dup {
			return nil, ErrOwnerHasGame
		}
	}
	g, err := NewGame(m.rules, owner, name, password)
	if err != nil {
		return nil, err
	}
	m.games[g.ID()] = &managedGame{g: g}
	m.persist(ctx, g)
	return redact(g.Snapshot()), nil
}

// withGame runs fn with exclusive access to one game, then writes the game
// through to the store if the operation succeeded.
func (m *Manager) withGame(ctx context.Context, id string, fn func(*Game) error) error {
	m.mu.RLock()
	mg, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return ErrGameNotFound
	}
	mg.mu.Lock()
	defer mg.mu.Unlock()
	if mg.removed {
		return ErrGameNotFound
	}
	if err := fn(mg.g); err != nil {
		return err
	}
	m.persist(ctx, mg.g)
	return nil
}

// persist best-effort saves a game. Store failures never corrupt or roll
// back live game state; they are logged and the game plays on.
func (m *Manager) persist(ctx context.Context, g *Game) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, g.Snapshot()); err != nil {
		log.Error().Err(err).Str("game", g.ID()).Msg("snapshot save failed")
	}
}

// JoinGame adds a player to a waiting game's lobby.
func (m *Manager) JoinGame(ctx context.Context, gameID string, player PlayerInfo, password string) (*Snapshot, error) {
	var snap *Snapshot
	err := m.withGame(ctx, gameID, func(g *Game) error {
		if err := g.AddPlayer(player, password); err != nil {
			return err
		}
		snap = redact(g.Snapshot())
		return nil
	})
	return snap, err
}

// StartGame begins play: racks fill, the first mover is established.
func (m *Manager) StartGame(ctx context.Context, gameID, callerID string) (*Snapshot, error) {
	var snap *Snapshot
	err := m.withGame(ctx, gameID, func(g *Game) error {
		if err := g.Start(callerID); err != nil {
			return err
		}
		snap = redact(g.Snapshot())
		return nil
	})
	return snap, err
}

// PlaceWord submits a word placement for the current player.
func (m *Manager) PlaceWord(ctx context.Context, gameID, playerID string, placements []Placement) (*PlayResult, error) {
	var res *PlayResult
	err := m.withGame(ctx, gameID, func(g *Game) error {
		var err error
		res, err = g.PlaceStones(ctx, playerID, placements)
		return err
	})
	return res, err
}

// ExchangeStones swaps rack stones for fresh draws and completes the turn.
func (m *Manager) ExchangeStones(ctx context.Context, gameID, playerID string, stoneIDs []int) ([]*tiles.Stone, error) {
	var rack []*tiles.Stone
	err := m.withGame(ctx, gameID, func(g *Game) error {
		var err error
		rack, err = g.ExchangeStones(ctx, playerID, stoneIDs)
		return err
	})
	return rack, err
}

// LeaveGame removes a player. A game with nobody left in it is dropped from
// the registry.
func (m *Manager) LeaveGame(ctx context.Context, gameID, playerID string) error {
	empty := false
	err := m.withGame(ctx, gameID, func(g *Game) error {
		if err := g.RemovePlayer(playerID); err != nil {
			return err
		}
		empty = len(g.players) == 0
		return nil
	})
	if err != nil {
		return err
	}
	if empty {
		m.drop(ctx, gameID)
	}
	return nil
}

// EndGame finishes and destroys a game.
func (m *Manager) EndGame(ctx context.Context, gameID, callerID string) error {
	err := m.withGame(ctx, gameID, func(g *Game) error {
		return g.End(callerID)
	})
	if err != nil {
		return err
	}
	m.drop(ctx, gameID)
	return nil
}

// drop removes a game from the registry and the store.
func (m *Manager) drop(ctx context.Context, gameID string) {
	m.mu.Lock()
	mg, ok := m.games[gameID]
	if ok {
		delete(m.games, gameID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	mg.mu.Lock()
	mg.removed = true
	mg.mu.Unlock()
	if m.store != nil {
		if err := m.store.Delete(ctx, gameID); err != nil {
			log.Error().Err(err).Str("game", gameID).Msg("snapshot delete failed")
		}
	}
}

// GameState returns a consistent view of a game, with the password
// redacted.
func (m *Manager) GameState(ctx context.Context, gameID string) (*Snapshot, error) {
	var snap *Snapshot
	err := m.readGame(gameID, func(g *Game) error {
		snap = redact(g.Snapshot())
		return nil
	})
	return snap, err
}

// PlayerRack returns a copy of one player's rack.
func (m *Manager) PlayerRack(ctx context.Context, gameID, playerID string) ([]*tiles.Stone, error) {
	var rack []*tiles.Stone
	err := m.readGame(gameID, func(g *Game) error {
		var err error
		rack, err = g.Rack(playerID)
		return err
	})
	return rack, err
}

// readGame is withGame without the store write-through, for queries.
func (m *Manager) readGame(id string, fn func(*Game) error) error {
	m.mu.RLock()
	mg, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return ErrGameNotFound
	}
	mg.mu.Lock()
	defer mg.mu.Unlock()
	if mg.removed {
		return ErrGameNotFound
	}
	return fn(mg.g)
}

// GameIDs lists the live games.
func (m *Manager) GameIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	return ids
}

func redact(s *Snapshot) *Snapshot {
	s.Password = ""
	return s
}
