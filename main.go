package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/aracataca/config"
	"github.com/domino14/aracataca/game"
	"github.com/domino14/aracataca/lexicon"
	"github.com/domino14/aracataca/shell"
	"github.com/domino14/aracataca/store"
	"github.com/domino14/aracataca/tiles"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var dict lexicon.Dictionary = lexicon.AcceptAll{}
	if cfg.LexiconPath != "" {
		f, err := os.Open(cfg.LexiconPath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening lexicon")
		}
		wl, err := lexicon.ScanWordList(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("reading lexicon")
		}
		dict = wl
	}
	dict = lexicon.Guarded{Dict: dict, Timeout: cfg.DictionaryTimeout}

	rules, err := game.StandardRules(dict)
	if err != nil {
		log.Fatal().Err(err).Msg("building rules")
	}
	if cfg.LetterDistributionPath != "" {
		f, err := os.Open(cfg.LetterDistributionPath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening letter distribution")
		}
		ld, err := tiles.ScanLetterDistribution(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("reading letter distribution")
		}
		rules.Distribution = ld
	}
	if cfg.MaxPlayers > 0 {
		rules.MaxPlayers = cfg.MaxPlayers
	}

	var snapStore game.SnapshotStore
	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening snapshot store")
		}
		defer st.Close()
		snapStore = st
	}

	mgr := game.NewManager(rules, snapStore)
	if err := shell.New(mgr).Run(); err != nil {
		log.Fatal().Err(err).Msg("shell exited")
	}
}
