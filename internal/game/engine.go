// internal/game/engine.go
//
// Session API for a single word search game.
// Responsibilities:
//   - Build a grid, run the placer over the word list, fill the rest.
//   - Route claims to the finder after validating the direction name.
//   - Expose snapshots, remaining words, found words and dropped words.
//
// Notes:
//   - A Session is single-writer. Embedders serving concurrent callers must
//     hold a lock around Submit/Claim (see internal/store).
//   - Words that cannot be placed are dropped and reported via Dropped();
//     they never appear in the remaining set.
//   - Crossing words share cells, and a claim consumes shared cells too.
//     A session whose remaining words are all broken that way is Blocked.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"

	"github.com/robalobadob/wordsearch/internal/words"
)

// Session bundles one grid with its word list and claim state.
type Session struct {
	ID   string
	Rows int
	Cols int

	grid       *Grid
	finder     *Finder
	placements []Placement
	dropped    []string
	attempts   int
}

type options struct {
	rng *mrand.Rand
	cfg PlacerConfig
}

// Option customizes NewSession.
type Option func(*options)

// WithSeed makes placement and filler letters reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithRand supplies the random source directly.
func WithRand(rng *mrand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithPlacerConfig overrides the placer retry counts.
func WithPlacerConfig(cfg PlacerConfig) Option {
	return func(o *options) { o.cfg = cfg }
}

// NewSession validates the inputs, places the words and returns a session
// ready for claims. Words are uppercased; duplicates keep their first
// occurrence.
func NewSession(rows, cols int, list []string, opts ...Option) (*Session, error) {
	o := options{cfg: DefaultPlacerConfig()}
	for _, fn := range opts {
		fn(&o)
	}
	if o.rng == nil {
		o.rng = mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))
	}

	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeList(list)
	if err != nil {
		return nil, err
	}

	placed, dropped := NewPlacer(g, o.rng, o.cfg).PlaceAll(normalized)
	placedWords := make([]string, len(placed))
	for i, pl := range placed {
		placedWords[i] = pl.Word
	}

	return &Session{
		ID:         randomID(),
		Rows:       rows,
		Cols:       cols,
		grid:       g,
		finder:     NewFinder(g, placedWords),
		placements: placed,
		dropped:    dropped,
	}, nil
}

func normalizeList(list []string) ([]string, error) {
	if len(list) == 0 {
		return nil, ErrNoWords
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		n, ok := words.Normalize(w)
		if !ok {
			return nil, ErrInvalidWord
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

// Submit is the string-facing claim entry point. directionName must be
// Horizontal, Vertical or Diagonal; anything else is rejected with
// ErrInvalidDirection before the grid is consulted.
func (s *Session) Submit(word string, row, col int, directionName string) (bool, error) {
	d, err := ParseDirection(directionName)
	if err != nil {
		return false, err
	}
	return s.Claim(word, row, col, d)
}

// Claim forwards a typed claim to the finder and counts the attempt.
func (s *Session) Claim(word string, row, col int, d Direction) (bool, error) {
	ok, err := s.finder.Claim(word, row, col, d)
	if err != nil {
		return false, err
	}
	s.attempts++
	return ok, nil
}

// Snapshot returns a copy of the current grid.
func (s *Session) Snapshot() [][]byte { return s.grid.Snapshot() }

// Remaining returns the unclaimed words in list order.
func (s *Session) Remaining() []string { return s.finder.Remaining() }

// Found returns the successful claims in order.
func (s *Session) Found() []Placement { return s.finder.Found() }

// Placements returns where each placed word was written.
func (s *Session) Placements() []Placement { return append([]Placement(nil), s.placements...) }

// Dropped returns the words that did not fit anywhere on the grid.
func (s *Session) Dropped() []string { return append([]string(nil), s.dropped...) }

// Attempts counts claims that reached the finder, successful or not.
func (s *Session) Attempts() int { return s.attempts }

// Done reports whether every placed word has been claimed.
func (s *Session) Done() bool { return s.finder.Done() }

// Blocked reports whether words remain that can no longer be claimed
// because a crossing claim consumed one of their letters.
func (s *Session) Blocked() bool { return s.finder.Stuck() }

// Over reports whether the session has reached a terminal state.
func (s *Session) Over() bool { return s.State() != StatePlaying }

// Overlapping reports whether any two placed words share a cell. Such a
// session can end Blocked instead of complete.
func (s *Session) Overlapping() bool { return Overlapping(s.placements) }

// Session states.
const (
	StatePlaying  = "playing"
	StateComplete = "complete"
	StateBlocked  = "blocked"
)

// State reports StateComplete once every word is claimed, StateBlocked
// when the remaining words cannot be claimed any more, else StatePlaying.
func (s *Session) State() string {
	switch {
	case s.Done():
		return StateComplete
	case s.Blocked():
		return StateBlocked
	}
	return StatePlaying
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
