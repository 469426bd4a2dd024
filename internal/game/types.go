// internal/game/types.go
//
// Core type definitions for the word search engine.
// Defines:
//   - Direction: the closed set of line directions a word may run along.
//   - Cell markers: the empty placeholder and the consumed marker.
//   - Placement: a word anchored at a start cell with a direction.
//   - Sentinel errors returned at the package boundary.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the three supported line directions.
// Reverse directions (left, up, up-left) are not supported.
type Direction uint8

const (
	Horizontal Direction = iota // row+0, col+1
	Vertical                    // row+1, col+0
	Diagonal                    // row+1, col+1 (down-right)
)

// Directions lists every Direction in the fixed order the placer walks them.
var Directions = [...]Direction{Horizontal, Vertical, Diagonal}

// Cell markers. Every grid cell holds either an uppercase letter A–Z,
// Empty (before the filler pass) or Consumed (after a successful claim).
const (
	Empty    byte = '.'
	Consumed byte = '*'
)

var (
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrNoWords           = errors.New("word list is empty")
	ErrInvalidWord       = errors.New("words must contain only letters A-Z")
)

// Valid reports whether d is one of the three known directions.
func (d Direction) Valid() bool { return d <= Diagonal }

// Delta returns the row and column step for d.
// Invalid directions return (0, 0).
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case Diagonal:
		return 1, 1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case Diagonal:
		return "Diagonal"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection maps a direction name ("Horizontal", "Vertical",
// "Diagonal", case-insensitive) to a Direction.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	case "diagonal":
		return Diagonal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, name)
}

// MarshalText encodes d by name so JSON payloads read "Horizontal" etc.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrInvalidDirection
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Placement anchors a word at (Row, Col) running along Direction.
type Placement struct {
	Word      string    `json:"word"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
}

// Cells returns the (row, col) pairs the placement covers, in word order.
func (p Placement) Cells() [][2]int {
	dr, dc := p.Direction.Delta()
	out := make([][2]int, len(p.Word))
	for i := range out {
		out[i] = [2]int{p.Row + i*dr, p.Col + i*dc}
	}
	return out
}

// Overlapping reports whether any two placements share a cell.
func Overlapping(ps []Placement) bool {
	seen := make(map[[2]int]struct{})
	for _, p := range ps {
		for _, rc := range p.Cells() {
			if _, dup := seen[rc]; dup {
				return true
			}
			seen[rc] = struct{}{}
		}
	}
	return false
}
