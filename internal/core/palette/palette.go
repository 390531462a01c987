package palette

import (
	"hash/fnv"
	"image/color"
	"strconv"
)

// Colors is the dashboard palette, as CSS hex strings.
var Colors = []string{"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe", "#00f2fe"}

// Index returns the palette slot for a label.
// Stable and deterministic: the same label always maps to the same slot,
// whichever backend draws it. Uses FNV-32a.
func Index(label string) int {
	h := fnv.New32a()
	h.Write([]byte(label))
	return int(h.Sum32() % uint32(len(Colors)))
}

// For returns the hex colour of a label.
func For(label string) string {
	return Colors[Index(label)]
}

// RGBA returns the colour of a label for raster drawing.
func RGBA(label string) color.RGBA {
	return Parse(For(label))
}

// Parse converts "#rrggbb" into an opaque colour. Malformed input yields black.
func Parse(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
