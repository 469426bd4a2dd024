package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", rows, cols, err)
	}
	return g
}

func TestNewGridRejectsNonPositiveDimensions(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 5},
		{"zero cols", 5, 0},
		{"negative", -1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewGrid(tc.rows, tc.cols); !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestNewGridStartsEmpty(t *testing.T) {
	g := mustGrid(t, 2, 3)
	want := [][]byte{[]byte("..."), []byte("...")}
	if diff := cmp.Diff(want, g.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("dimensions = %dx%d", g.Rows(), g.Cols())
	}
}

func TestCanPlace(t *testing.T) {
	g := mustGrid(t, 5, 5)
	g.Place("CAT", 0, 0, Horizontal) // C A T . .

	cases := []struct {
		name     string
		word     string
		row, col int
		dir      Direction
		want     bool
	}{
		{"empty cells", "DOG", 2, 0, Horizontal, true},
		{"compatible crossing", "CUP", 0, 0, Vertical, true},
		{"crossing through A", "BAD", 0, 1, Vertical, false},
		{"starts above grid", "XA", -1, 1, Vertical, false},
		{"mismatch at start", "OAK", 0, 1, Vertical, false},
		{"diagonal crossing at C", "COW", 0, 0, Diagonal, true},
		{"conflicting letter", "DOG", 0, 0, Horizontal, false},
		{"runs off right edge", "HORSE", 1, 1, Horizontal, false},
		{"runs off bottom edge", "HORSE", 1, 0, Vertical, false},
		{"diagonal off edge", "ABC", 3, 3, Diagonal, false},
		{"negative row", "AB", -1, 0, Horizontal, false},
		{"negative col", "AB", 0, -1, Vertical, false},
		{"exact fit", "HORSE", 4, 0, Horizontal, true},
		{"invalid direction", "AB", 2, 2, Direction(9), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.CanPlace(tc.word, tc.row, tc.col, tc.dir); got != tc.want {
				t.Fatalf("CanPlace(%q, %d, %d, %v) = %v, want %v", tc.word, tc.row, tc.col, tc.dir, got, tc.want)
			}
		})
	}
}

func TestPlaceWritesAlongDirection(t *testing.T) {
	g := mustGrid(t, 3, 3)
	g.Place("ABC", 0, 0, Diagonal)
	g.Place("AXY", 0, 0, Horizontal)
	want := [][]byte{
		[]byte("AXY"),
		[]byte(".B."),
		[]byte("..C"),
	}
	if diff := cmp.Diff(want, g.Snapshot()); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	g := mustGrid(t, 3, 3)
	g.Place("SUN", 1, 0, Horizontal)

	first := g.Snapshot()
	second := g.Snapshot()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two snapshots differ without mutation:\n%s", diff)
	}

	first[1][0] = 'Z'
	if g.At(1, 0) != 'S' {
		t.Fatalf("mutating a snapshot changed the grid: %q", g.At(1, 0))
	}
}

func TestFillEmpty(t *testing.T) {
	g := mustGrid(t, 6, 6)
	g.Place("FUDGE", 2, 1, Horizontal)
	g.FillEmpty(seededRand(7))

	snap := g.Snapshot()
	for r, row := range snap {
		for c, ch := range row {
			if ch < 'A' || ch > 'Z' {
				t.Fatalf("cell (%d,%d) = %q, want a letter", r, c, ch)
			}
		}
	}
	if got := string(snap[2][1:6]); got != "FUDGE" {
		t.Fatalf("placed word overwritten: %q", got)
	}

	g.FillEmpty(seededRand(99))
	if diff := cmp.Diff(snap, g.Snapshot()); diff != "" {
		t.Fatalf("second fill changed a filled grid:\n%s", diff)
	}
}

func TestFillEmptyLeavesConsumedCells(t *testing.T) {
	g := mustGrid(t, 1, 3)
	g.Place("**", 0, 0, Horizontal)
	g.FillEmpty(seededRand(1))
	if g.At(0, 0) != Consumed || g.At(0, 1) != Consumed {
		t.Fatalf("consumed markers replaced: %s", g)
	}
}

func TestLocate(t *testing.T) {
	g := mustGrid(t, 4, 4)
	g.Place("SUN", 1, 0, Diagonal)
	g.Place("SKY", 0, 3, Vertical)

	cases := []struct {
		word string
		want Placement
		ok   bool
	}{
		{"SUN", Placement{Word: "SUN", Row: 1, Col: 0, Direction: Diagonal}, true},
		{"SKY", Placement{Word: "SKY", Row: 0, Col: 3, Direction: Vertical}, true},
		{"SKYS", Placement{}, false},
		{"MOON", Placement{}, false},
		{"", Placement{}, false},
	}
	for _, tc := range cases {
		got, ok := g.Locate(tc.word)
		if ok != tc.ok {
			t.Fatalf("Locate(%q) ok = %v", tc.word, ok)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Locate(%q) (-want +got):\n%s", tc.word, diff)
		}
	}
}
