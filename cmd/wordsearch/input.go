package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/wordsearch/internal/game"
)

// claimInput is one parsed input line.
type claimInput struct {
	word      string
	row, col  int
	direction string
}

// parseClaim reads "WORD ROW COL DIRECTION". COL is a column letter as
// printed above the grid; a plain number is accepted too.
func parseClaim(line string) (claimInput, error) {
	f := strings.Fields(line)
	if len(f) != 4 {
		return claimInput{}, fmt.Errorf("want WORD ROW COL DIRECTION, got %d fields", len(f))
	}
	row, err := strconv.Atoi(f[1])
	if err != nil {
		return claimInput{}, fmt.Errorf("row %q: %w", f[1], err)
	}
	col, ok := game.ParseColumn(f[2])
	if !ok {
		n, err := strconv.Atoi(f[2])
		if err != nil {
			return claimInput{}, fmt.Errorf("column %q is neither a letter nor a number", f[2])
		}
		col = n
	}
	return claimInput{word: f[0], row: row, col: col, direction: f[3]}, nil
}
