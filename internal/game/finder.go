package game

import (
	"slices"
	"strings"
)

// Finder verifies claims against a populated Grid and consumes matched
// words. It is the only writer of the grid once placement is done.
// Finder does no locking; concurrent callers must serialize Claim.
type Finder struct {
	grid      *Grid
	remaining []string
	found     []Placement
}

// NewFinder takes ownership of g for claim processing. words is copied.
func NewFinder(g *Grid, words []string) *Finder {
	return &Finder{grid: g, remaining: slices.Clone(words)}
}

// Claim checks that word (uppercased) is still remaining and lies on the
// grid starting at (row, col) along d. On a full match every visited cell
// becomes Consumed and the word leaves the remaining set.
//
// A wrong guess (unknown word, off-grid path, letter mismatch) returns
// false with the grid and remaining set untouched. Only an unknown
// direction is an error.
func (f *Finder) Claim(word string, row, col int, d Direction) (bool, error) {
	if !d.Valid() {
		return false, ErrInvalidDirection
	}
	word = strings.ToUpper(word)
	idx := slices.Index(f.remaining, word)
	if idx < 0 {
		return false, nil
	}

	if !f.grid.matches(word, row, col, d) {
		return false, nil
	}

	dr, dc := d.Delta()
	for i := 0; i < len(word); i++ {
		f.grid.cells[row+i*dr][col+i*dc] = Consumed
	}
	f.remaining = slices.Delete(f.remaining, idx, idx+1)
	f.found = append(f.found, Placement{Word: word, Row: row, Col: col, Direction: d})
	return true, nil
}

// Remaining returns the unclaimed words in list order.
func (f *Finder) Remaining() []string { return slices.Clone(f.remaining) }

// Found returns the successful claims in the order they were made.
func (f *Finder) Found() []Placement { return slices.Clone(f.found) }

// Done reports whether every word has been claimed.
func (f *Finder) Done() bool { return len(f.remaining) == 0 }

// Stuck reports whether words remain but none of them still lies intact
// anywhere on the grid. This happens when a claim consumed a cell shared
// with a crossing word.
func (f *Finder) Stuck() bool {
	if f.Done() {
		return false
	}
	for _, w := range f.remaining {
		if _, ok := f.grid.Locate(w); ok {
			return false
		}
	}
	return true
}
