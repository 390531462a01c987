package aggregation

import (
	"math"

	"github.com/shopspring/decimal"
)

// ExtractDecimal converts a normalised dataset value into an exact decimal.
// Missing, non-numeric and non-finite values report false; callers count
// them as skipped rather than folding a zero into the reduction.
func ExtractDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case int64:
		return decimal.NewFromInt(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(val), true
	}
	return decimal.Zero, false
}
