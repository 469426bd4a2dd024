package game

import (
	"math/rand/v2"
	"strings"
)

// Grid is a fixed-size character matrix. Dimensions never change after
// NewGrid. A Grid is not safe for concurrent use; callers serialize access.
type Grid struct {
	rows, cols int
	cells      [][]byte
}

// NewGrid returns a rows x cols grid with every cell set to Empty.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	cells := make([][]byte, rows)
	for i := range cells {
		row := make([]byte, cols)
		for j := range row {
			row[j] = Empty
		}
		cells[i] = row
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// At returns the byte at (r, c). It panics when out of bounds.
func (g *Grid) At(r, c int) byte { return g.cells[r][c] }

// CanPlace reports whether word fits at (row, col) along d: every covered
// cell must be in bounds and either Empty or already hold the same letter.
func (g *Grid) CanPlace(word string, row, col int, d Direction) bool {
	if !d.Valid() {
		return false
	}
	dr, dc := d.Delta()
	for i := 0; i < len(word); i++ {
		r, c := row+i*dr, col+i*dc
		if !g.inBounds(r, c) {
			return false
		}
		if cur := g.cells[r][c]; cur != Empty && cur != word[i] {
			return false
		}
	}
	return true
}

// matches reports whether the grid spells word from (row, col) along d.
func (g *Grid) matches(word string, row, col int, d Direction) bool {
	dr, dc := d.Delta()
	for i := 0; i < len(word); i++ {
		r, c := row+i*dr, col+i*dc
		if !g.inBounds(r, c) || g.cells[r][c] != word[i] {
			return false
		}
	}
	return true
}

// Locate returns the first position, in row-major order per direction,
// where the grid spells word.
func (g *Grid) Locate(word string) (Placement, bool) {
	if word == "" {
		return Placement{}, false
	}
	for _, d := range Directions {
		for r := 0; r < g.rows; r++ {
			for c := 0; c < g.cols; c++ {
				if g.matches(word, r, c, d) {
					return Placement{Word: word, Row: r, Col: c, Direction: d}, true
				}
			}
		}
	}
	return Placement{}, false
}

// Place writes word into the grid starting at (row, col) along d.
//
// Place does not re-check bounds or conflicts. Callers must have validated
// the position with CanPlace first; an unchecked conflicting write silently
// overwrites letters of earlier words.
func (g *Grid) Place(word string, row, col int, d Direction) {
	dr, dc := d.Delta()
	for i := 0; i < len(word); i++ {
		g.cells[row+i*dr][col+i*dc] = word[i]
	}
}

// FillEmpty replaces every Empty cell with a uniformly random letter A–Z.
// Cells that already hold a letter (or Consumed) are left as is.
func (g *Grid) FillEmpty(rng *rand.Rand) {
	for _, row := range g.cells {
		for j, b := range row {
			if b == Empty {
				row[j] = byte('A' + rng.IntN(26))
			}
		}
	}
}

// Snapshot returns a deep copy of the cells.
func (g *Grid) Snapshot() [][]byte {
	out := make([][]byte, g.rows)
	for i, row := range g.cells {
		out[i] = append([]byte(nil), row...)
	}
	return out
}

// String renders the grid as space-separated rows.
func (g *Grid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		for j, ch := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(ch)
		}
		if i < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
