// Package lexicon defines the dictionary capability the engine validates
// words against. The engine only ever asks one question: does this word
// exist?
package lexicon

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/text/cases"
)

// Dictionary is the external word-lookup collaborator. Lookups are
// case-insensitive; the empty string is never a word. Implementations may
// block on I/O, so every lookup takes a context.
type Dictionary interface {
	HasWord(ctx context.Context, word string) (bool, error)
}

// Normalize case-folds a word so that lookups are case-insensitive across
// implementations. A fresh Caser per call; Casers are not safe for
// concurrent use and lookups from different games can race.
func Normalize(word string) string {
	return cases.Fold().String(word)
}

// A WordList is an in-memory Dictionary backed by a set of words.
type WordList struct {
	words map[string]struct{}
}

// ScanWordList reads one word per line.
func ScanWordList(r io.Reader) (*WordList, error) {
	words := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := scanner.Text()
		if w == "" {
			continue
		}
		words[Normalize(w)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &WordList{words: words}, nil
}

func (wl *WordList) HasWord(ctx context.Context, word string) (bool, error) {
	if word == "" {
		return false, nil
	}
	_, ok := wl.words[Normalize(word)]
	return ok, nil
}

// AcceptAll accepts every nonempty word. Useful for tests and casual games.
type AcceptAll struct{}

func (AcceptAll) HasWord(ctx context.Context, word string) (bool, error) {
	return word != "", nil
}
