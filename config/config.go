// Package config loads engine settings from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the engine's runtime settings. Every field can be set with
// an ARACATACA_-prefixed environment variable (e.g. ARACATACA_DEBUG=1).
type Config struct {
	// LetterDistributionPath overrides the embedded English distribution
	// with a CSV of letter,quantity,value,vowel rows.
	LetterDistributionPath string
	// LexiconPath points at a newline-delimited word list. Empty means
	// every word is accepted.
	LexiconPath string
	// DictionaryTimeout bounds a single word lookup.
	DictionaryTimeout time.Duration
	// DBPath is the SQLite snapshot database. Empty disables persistence.
	DBPath string
	// MaxPlayers caps each game's lobby.
	MaxPlayers int
	// Debug enables debug logging.
	Debug bool
}

func (c *Config) Load() error {
	v := viper.New()
	v.SetEnvPrefix("aracataca")
	v.AutomaticEnv()
	v.SetDefault("letter_distribution_path", "")
	v.SetDefault("lexicon_path", "")
	v.SetDefault("dictionary_timeout", "2s")
	v.SetDefault("db_path", "")
	v.SetDefault("max_players", 4)
	v.SetDefault("debug", false)

	c.LetterDistributionPath = v.GetString("letter_distribution_path")
	c.LexiconPath = v.GetString("lexicon_path")
	c.DictionaryTimeout = v.GetDuration("dictionary_timeout")
	c.DBPath = v.GetString("db_path")
	c.MaxPlayers = v.GetInt("max_players")
	c.Debug = v.GetBool("debug")
	return nil
}
