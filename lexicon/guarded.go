package lexicon

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

// DefaultLookupTimeout bounds a single dictionary lookup so that a slow
// collaborator cannot stall the rest of the game.
const DefaultLookupTimeout = 2 * time.Second

// Guarded wraps a Dictionary with a per-call timeout and one bounded retry.
// A lookup that still fails is reported as an error; the caller treats the
// word as not validated and rejects the play without touching game state.
type Guarded struct {
	Dict    Dictionary
	Timeout time.Duration
}

func (g Guarded) HasWord(ctx context.Context, word string) (bool, error) {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	var found bool
	err := retry.Do(
		func() error {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			var err error
			found, err = g.Dict.HasWord(cctx, word)
			return err
		},
		retry.Attempts(2),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("dictionary lookup failed")
		return false, err
	}
	return found, nil
}
