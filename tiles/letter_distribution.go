package tiles

import (
	"embed"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"
)

//go:embed english.csv
var distributions embed.FS

// ErrEmptyDistribution is returned when a letter distribution has no rows;
// a bag cannot be built from it.
var ErrEmptyDistribution = errors.New("letter distribution is empty")

type letterInfo struct {
	letter rune
	count  int
	value  int
	vowel  bool
}

// LetterDistribution encodes the stone distribution for the game: how many
// copies of each letter exist and what each is worth.
type LetterDistribution struct {
	letters   []letterInfo
	numStones int
}

// ScanLetterDistribution reads a distribution from CSV rows of the form
// letter,quantity,value,vowel.
func ScanLetterDistribution(data io.Reader) (*LetterDistribution, error) {
	r := csv.NewReader(data)
	letters := []letterInfo{}
	total := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		letter, _ := utf8.DecodeRuneInString(record[0])
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, err
		}
		p, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, err
		}
		letters = append(letters, letterInfo{
			letter: letter,
			count:  n,
			value:  p,
			vowel:  v == 1,
		})
		total += n
	}
	if total == 0 {
		return nil, ErrEmptyDistribution
	}
	return &LetterDistribution{letters: letters, numStones: total}, nil
}

// EnglishLetterDistribution returns the standard 100-stone English
// distribution.
func EnglishLetterDistribution() (*LetterDistribution, error) {
	f, err := distributions.Open("english.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ScanLetterDistribution(f)
}

// MakeStones mints the full stone set for this distribution, with sequential
// IDs. Called once per game, at bag initialization.
func (ld *LetterDistribution) MakeStones() []*Stone {
	stones := make([]*Stone, 0, ld.numStones)
	id := 0
	for _, li := range ld.letters {
		for i := 0; i < li.count; i++ {
			stones = append(stones, &Stone{ID: id, Letter: li.letter, Value: li.value})
			id++
		}
	}
	return stones
}

// NumStones is the total number of stones the distribution mints.
func (ld *LetterDistribution) NumStones() int {
	return ld.numStones
}

// Score returns the point value of a letter, or 0 if the letter is not in
// the distribution.
func (ld *LetterDistribution) Score(letter rune) int {
	for _, li := range ld.letters {
		if li.letter == letter {
			return li.value
		}
	}
	return 0
}
