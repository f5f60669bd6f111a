package lexicon

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestWordList(t *testing.T) {
	is := is.New(t)
	wl, err := ScanWordList(strings.NewReader("CAT\ndog\nÆther\n"))
	is.NoErr(err)

	ctx := context.Background()
	cases := []struct {
		word string
		want bool
	}{
		{"CAT", true},
		{"cat", true},
		{"Cat", true},
		{"DOG", true},
		{"æther", true},
		{"bird", false},
		{"", false},
	}
	for _, tc := range cases {
		got, err := wl.HasWord(ctx, tc.word)
		is.NoErr(err)
		if got != tc.want {
			t.Errorf("HasWord(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestAcceptAll(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	ok, err := AcceptAll{}.HasWord(ctx, "QXZV")
	is.NoErr(err)
	is.True(ok)
	ok, err = AcceptAll{}.HasWord(ctx, "")
	is.NoErr(err)
	is.True(!ok)
}

// slowDict blocks until its context is cancelled.
type slowDict struct{}

func (slowDict) HasWord(ctx context.Context, word string) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func TestGuardedTimeout(t *testing.T) {
	is := is.New(t)
	g := Guarded{Dict: slowDict{}, Timeout: 5 * time.Millisecond}
	ok, err := g.HasWord(context.Background(), "WORD")
	is.True(err != nil)
	is.True(!ok)
	is.True(errors.Is(err, context.DeadlineExceeded))
}

func TestGuardedPassthrough(t *testing.T) {
	is := is.New(t)
	wl, err := ScanWordList(strings.NewReader("HELLO\n"))
	is.NoErr(err)
	g := Guarded{Dict: wl, Timeout: time.Second}
	ok, err := g.HasWord(context.Background(), "hello")
	is.NoErr(err)
	is.True(ok)
	ok, err = g.HasWord(context.Background(), "nope")
	is.NoErr(err)
	is.True(!ok)
}
