// internal/words/words.go
//
// Provides the vocabulary that games draw their hidden words from.
//
// Responsibilities:
//   - Load the word list from a configured file or fall back to the embedded default.
//   - Normalize words to uppercase A–Z and drop anything that does not fit.
//   - Supply Pick for choosing distinct words that fit a grid, plus Stats.
//
// Initialization behavior (Init):
//   1. If path is non-empty (WORDS_FILE), load that file.
//   2. Otherwise use assets/words.txt.
//
// Constraints:
//   • Words are MinLen..MaxLen letters A–Z after uppercasing.
//   • Duplicates are removed, first occurrence wins.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordsearch/assets"
)

const (
	MinLen = 3
	MaxLen = 12
)

var (
	initOnce   sync.Once
	list       []string
	initialErr error
)

// Init loads the vocabulary exactly once.
// Returns an error if the resulting list is empty.
func Init(path string) error {
	initOnce.Do(func() {
		var raw []string
		var err error
		if path != "" {
			raw, err = readWordFile(path)
		} else {
			raw, err = assets.WordList()
		}
		if err != nil {
			initialErr = err
			return
		}
		list = filter(raw)
		if len(list) == 0 {
			initialErr = errors.New("words: list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// filter normalizes, length-checks and de-duplicates raw entries.
func filter(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		n, ok := Normalize(w)
		if !ok || len(n) < MinLen || len(n) > MaxLen {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Normalize trims and uppercases w and reports whether it is a non-empty
// run of letters A–Z.
func Normalize(w string) (string, bool) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if w == "" {
		return "", false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", false
		}
	}
	return w, true
}

// Pick returns up to n distinct words no longer than maxLen, in random
// order drawn from rng. A maxLen <= 0 means no limit.
func Pick(rng *rand.Rand, n, maxLen int) []string {
	return pickFrom(list, rng, n, maxLen)
}

func pickFrom(src []string, rng *rand.Rand, n, maxLen int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(src)) {
		w := src[i]
		if maxLen > 0 && len(w) > maxLen {
			continue
		}
		out = append(out, w)
		if len(out) == n {
			break
		}
	}
	return out
}

// Stats returns the number of loaded words.
func Stats() int { return len(list) }
