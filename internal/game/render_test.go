package game

import (
	"strings"
	"testing"
)

func TestColumnLabels(t *testing.T) {
	cases := map[int]string{0: "a", 1: "b", 25: "z", 26: "aa", 27: "ab", 51: "az", 52: "ba", 701: "zz", 702: "aaa"}
	for i, want := range cases {
		if got := ColumnLabel(i); got != want {
			t.Errorf("ColumnLabel(%d) = %q, want %q", i, got, want)
		}
		if back, ok := ParseColumn(strings.ToUpper(want)); !ok || back != i {
			t.Errorf("ParseColumn(%q) = %d, %v; want %d", want, back, ok, i)
		}
	}
	for _, bad := range []string{"", "a1", "3", "-"} {
		if _, ok := ParseColumn(bad); ok {
			t.Errorf("ParseColumn(%q) should fail", bad)
		}
	}
}

func TestRender(t *testing.T) {
	snap := [][]byte{[]byte("AB*"), []byte("CDE")}
	want := "   a b c \n00 A B * \n01 C D E \n"
	if got := Render(snap); got != want {
		t.Fatalf("Render =\n%q\nwant\n%q", got, want)
	}
	if Render(nil) != "" {
		t.Fatal("empty snapshot should render as empty string")
	}
}
