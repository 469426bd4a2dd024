package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"Horizontal", Horizontal, false},
		{"vertical", Vertical, false},
		{" DIAGONAL ", Diagonal, false},
		{"Up", 0, true},
		{"", 0, true},
		{"h", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDirection(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDirection) {
					t.Fatalf("ParseDirection(%q) err = %v, want ErrInvalidDirection", tc.in, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ParseDirection(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestDirectionDelta(t *testing.T) {
	want := map[Direction][2]int{
		Horizontal:   {0, 1},
		Vertical:     {1, 0},
		Diagonal:     {1, 1},
		Direction(7): {0, 0},
	}
	for d, w := range want {
		dr, dc := d.Delta()
		if dr != w[0] || dc != w[1] {
			t.Errorf("%v.Delta() = (%d, %d), want (%d, %d)", d, dr, dc, w[0], w[1])
		}
	}
	if Direction(3).Valid() {
		t.Error("Direction(3) should be invalid")
	}
}

func TestPlacementJSON(t *testing.T) {
	p := Placement{Word: "CAT", Row: 2, Col: 3, Direction: Diagonal}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"word":"CAT","row":2,"col":3,"direction":"Diagonal"}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}

	var back Placement
	if err := json.Unmarshal([]byte(`{"word":"CAT","row":2,"col":3,"direction":"vertical"}`), &back); err != nil {
		t.Fatal(err)
	}
	if back.Direction != Vertical {
		t.Fatalf("direction = %v, want Vertical", back.Direction)
	}
	if err := json.Unmarshal([]byte(`{"direction":"sideways"}`), &back); err == nil {
		t.Fatal("expected an error for an unknown direction name")
	}
}

func TestPlacementCells(t *testing.T) {
	got := Placement{Word: "SUN", Row: 1, Col: 2, Direction: Diagonal}.Cells()
	want := [][2]int{{1, 2}, {2, 3}, {3, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cells (-want +got):\n%s", diff)
	}
}

func TestOverlapping(t *testing.T) {
	apart := []Placement{
		{Word: "CAT", Row: 0, Col: 0, Direction: Horizontal},
		{Word: "DOG", Row: 1, Col: 0, Direction: Horizontal},
	}
	if Overlapping(apart) {
		t.Fatal("disjoint placements reported as overlapping")
	}
	crossed := append(apart, Placement{Word: "ACE", Row: 0, Col: 1, Direction: Vertical})
	if !Overlapping(crossed) {
		t.Fatal("ACE shares (0,1) with CAT")
	}
}
