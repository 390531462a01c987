package palette

import (
	"image/color"
	"strconv"
	"testing"
)

func TestFor_Determinism(t *testing.T) {
	// Same label must always produce the same colour.
	c := For("Norte")
	for i := 0; i < 100; i++ {
		if got := For("Norte"); got != c {
			t.Fatalf("For(\"Norte\") = %s on iteration %d, want %s", got, i, c)
		}
	}
}

func TestIndex_Range(t *testing.T) {
	inputs := []string{"", "a", "Norte", "Sul", "a-very-long-category-label-that-should-still-hash"}
	for _, s := range inputs {
		i := Index(s)
		if i < 0 || i >= len(Colors) {
			t.Errorf("Index(%q) = %d, want [0, %d)", s, i, len(Colors))
		}
	}
}

func TestIndex_Distribution(t *testing.T) {
	// 100 labels over 6 slots should touch every slot.
	seen := make(map[int]struct{})
	for i := 0; i < 100; i++ {
		seen[Index("label-"+strconv.Itoa(i))] = struct{}{}
	}
	if len(seen) != len(Colors) {
		t.Errorf("only %d distinct slots from 100 inputs, want %d", len(seen), len(Colors))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#667eea", color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}},
		{"#000000", color.RGBA{A: 0xff}},
		{"667eea", color.RGBA{A: 0xff}},
		{"#zzzzzz", color.RGBA{A: 0xff}},
	}
	for _, tc := range tests {
		if got := Parse(tc.in); got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
