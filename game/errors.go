package game

import (
	"errors"
	"fmt"
)

// Violation identifies which placement rule a rejected play broke. The set
// is closed; every check in the validator maps to exactly one of these.
type Violation int

const (
	OutOfBounds Violation = iota
	CellOccupied
	InvalidShape
	DiscontinuousWord
	MustCoverCenter
	DisconnectedPlay
	InvalidWord
)

func (v Violation) String() string {
	switch v {
	case OutOfBounds:
		return "OUT_OF_BOUNDS"
	case CellOccupied:
		return "CELL_OCCUPIED"
	case InvalidShape:
		return "INVALID_SHAPE"
	case DiscontinuousWord:
		return "DISCONTINUOUS_WORD"
	case MustCoverCenter:
		return "MUST_COVER_CENTER"
	case DisconnectedPlay:
		return "DISCONNECTED_PLAY"
	case InvalidWord:
		return "INVALID_WORD"
	}
	return "UNKNOWN"
}

// A PlayError rejects a single attempted placement. It carries the broken
// rule and, for word failures, the first word that failed lookup. A play
// rejected with a PlayError has no observable side effects.
type PlayError struct {
	Violation Violation
	Word      string
}

func (e *PlayError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("invalid play (%v): %q", e.Violation, e.Word)
	}
	return fmt.Sprintf("invalid play (%v)", e.Violation)
}

func playErr(v Violation) error {
	return &PlayError{Violation: v}
}

// Conflict, authorization and lookup failures, surfaced unchanged to the
// caller.
var (
	ErrGameNotFound   = errors.New("no such game")
	ErrPlayerNotFound = errors.New("no such player in this game")
	ErrStoneNotOnRack = errors.New("stone is not on this player's rack")

	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrOwnerHasGame  = errors.New("this player already owns an active game")
	ErrGameFull      = errors.New("game is full")
	ErrNotJoinable   = errors.New("game is not accepting players")
	ErrNotWaiting    = errors.New("game has already started")
	ErrNotRunning    = errors.New("game is not in progress")
	ErrNotOwner      = errors.New("only the game owner may do this")
	ErrTooFewPlayers = errors.New("at least two players are required to start")

	ErrWrongPassword = errors.New("wrong game password")
)
