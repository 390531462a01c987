package render

import (
	"math"
	"strconv"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
)

// Clamp maps a value onto the drawable range: negatives and non-finite
// values become 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// MaxValue returns the largest clamped value of the view, or 0.
func MaxValue(view *aggregation.View) float64 {
	max := 0.0
	for _, r := range view.Rows {
		if v := Clamp(r.Value); v > max {
			max = v
		}
	}
	return max
}

// BarLength scales value against max onto [0, scale]:
// round(value / max * scale). A non-positive max yields 0 for every bar.
func BarLength(value, max float64, scale int) int {
	if scale <= 0 || max <= 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		return 0
	}
	n := int(math.Round(Clamp(value) / max * float64(scale)))
	if n > scale {
		return scale
	}
	return n
}

// FormatNumber prints integers without decimals and everything else with two.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
