// internal/game/placer.go
//
// Word placement for a single grid.
// Each word goes through four escalating passes until one succeeds:
//   1. prime:       directions not used by any earlier word, fixed order
//   2. anti-repeat: random directions other than the previous word's
//   3. random:      any random direction
//   4. exhaustive:  every direction, every cell in row-major order
// A word that fails all four passes is dropped; the batch never fails.

package game

import (
	"math/rand/v2"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// PlacerConfig holds the retry counts of the randomized passes.
type PlacerConfig struct {
	PrimeSamples      int // random (row, col) samples per direction attempt
	AntiRepeatRetries int // direction draws in the anti-repeat pass
	RandomRetries     int // direction draws in the unrestricted pass
}

// DefaultPlacerConfig returns the 30/100/50 retry counts.
func DefaultPlacerConfig() PlacerConfig {
	return PlacerConfig{
		PrimeSamples:      30,
		AntiRepeatRetries: 100,
		RandomRetries:     50,
	}
}

// Placer places words into one Grid. The set of used directions and the
// previous word's direction are per-Placer state.
type Placer struct {
	grid    *Grid
	rng     *rand.Rand
	cfg     PlacerConfig
	used    mapset.Set[Direction]
	last    Direction
	hasLast bool
}

// NewPlacer wires a placer for g drawing randomness from rng.
func NewPlacer(g *Grid, rng *rand.Rand, cfg PlacerConfig) *Placer {
	return &Placer{
		grid: g,
		rng:  rng,
		cfg:  cfg,
		used: mapset.New[Direction](),
	}
}

// PlaceAll places each word in order, then fills the remaining empty cells
// exactly once. It returns the accepted placements and the dropped words.
func (p *Placer) PlaceAll(words []string) (placed []Placement, dropped []string) {
	for _, w := range words {
		if pl, ok := p.Place(w); ok {
			placed = append(placed, pl)
		} else {
			dropped = append(dropped, strings.ToUpper(w))
		}
	}
	p.grid.FillEmpty(p.rng)
	return placed, dropped
}

// Place finds a position for word and writes it into the grid.
// It reports false when no feasible position exists in any direction.
func (p *Placer) Place(word string) (Placement, bool) {
	word = strings.ToUpper(word)
	if word == "" {
		return Placement{}, false
	}

	// Pass 1: prime unused directions.
	for _, d := range Directions {
		if p.used.Has(d) {
			continue
		}
		if pl, ok := p.sample(word, d); ok {
			return p.commit(pl), true
		}
	}

	// Pass 2: avoid repeating the previous word's direction.
	for i := 0; i < p.cfg.AntiRepeatRetries; i++ {
		d := p.randomDirection()
		if p.hasLast && d == p.last {
			continue
		}
		if pl, ok := p.sample(word, d); ok {
			return p.commit(pl), true
		}
	}

	// Pass 3: any direction.
	for i := 0; i < p.cfg.RandomRetries; i++ {
		if pl, ok := p.sample(word, p.randomDirection()); ok {
			return p.commit(pl), true
		}
	}

	// Pass 4: linear scan.
	if pl, ok := p.exhaustive(word); ok {
		return p.commit(pl), true
	}
	return Placement{}, false
}

func (p *Placer) randomDirection() Direction {
	return Directions[p.rng.IntN(len(Directions))]
}

// sample draws up to PrimeSamples random start cells from the range where
// the word cannot run off the grid along d.
func (p *Placer) sample(word string, d Direction) (Placement, bool) {
	dr, dc := d.Delta()
	maxRow := p.grid.rows - len(word)*dr
	maxCol := p.grid.cols - len(word)*dc
	if maxRow < 0 || maxCol < 0 {
		return Placement{}, false
	}
	for i := 0; i < p.cfg.PrimeSamples; i++ {
		r := p.rng.IntN(maxRow + 1)
		c := p.rng.IntN(maxCol + 1)
		if p.grid.CanPlace(word, r, c, d) {
			return Placement{Word: word, Row: r, Col: c, Direction: d}, true
		}
	}
	return Placement{}, false
}

func (p *Placer) exhaustive(word string) (Placement, bool) {
	for _, d := range Directions {
		for r := 0; r < p.grid.rows; r++ {
			for c := 0; c < p.grid.cols; c++ {
				if p.grid.CanPlace(word, r, c, d) {
					return Placement{Word: word, Row: r, Col: c, Direction: d}, true
				}
			}
		}
	}
	return Placement{}, false
}

func (p *Placer) commit(pl Placement) Placement {
	p.grid.Place(pl.Word, pl.Row, pl.Col, pl.Direction)
	p.used.Put(pl.Direction)
	p.last, p.hasLast = pl.Direction, true
	return pl
}
