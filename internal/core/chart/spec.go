package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
)

// Kind is the type of chart to draw.
type Kind string

const (
	KindBar       Kind = "bar"
	KindPie       Kind = "pie"
	KindLine      Kind = "line"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindTable     Kind = "table"
)

// Kinds lists every recognised chart kind.
var Kinds = []Kind{KindBar, KindPie, KindLine, KindScatter, KindHistogram, KindTable}

// Valid reports whether k is a recognised kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// RequiresY reports whether the kind needs a numeric y_field.
func (k Kind) RequiresY() bool {
	return k == KindBar || k == KindLine || k == KindScatter
}

// Rendering hint keys accepted in Spec.Extra.
const (
	HintOp    = "op"
	HintBins  = "bins"
	HintTopN  = "top_n"
	HintColor = "color"
)

// MaxBins is the largest accepted bins hint.
const MaxBins = aggregation.MaxBins

// integer hints larger than this are never exact in a JSON number
const maxIntHint = 1 << 53

// Spec is an immutable description of what to draw.
type Spec struct {
	Kind   Kind           `json:"kind" yaml:"kind"`
	XField string         `json:"x_field" yaml:"x_field"`
	YField string         `json:"y_field,omitempty" yaml:"y_field,omitempty"`
	Title  string         `json:"title,omitempty" yaml:"title,omitempty"`
	Extra  map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Op returns the reduction operator. Without a y_field only count makes sense.
func (s Spec) Op() string {
	if op, ok := s.Extra[HintOp].(string); ok && op != "" {
		return op
	}
	if s.YField == "" {
		return aggregation.OpCount
	}
	return aggregation.OpSum
}

// Bins returns the histogram bin count, or the default when unset or invalid.
func (s Spec) Bins() int {
	n, ok, err := s.intHint(HintBins)
	if !ok || err != nil || n <= 0 {
		return aggregation.DefaultBins
	}
	return n
}

// TopN returns the requested group limit; 0 means all groups.
func (s Spec) TopN() int {
	n, ok, err := s.intHint(HintTopN)
	if !ok || err != nil || n < 0 {
		return 0
	}
	return n
}

// ColorField returns the optional colour column hint.
func (s Spec) ColorField() string {
	v, _ := s.Extra[HintColor].(string)
	return v
}

// DisplayTitle returns the title, deriving one from the bindings when empty.
func (s Spec) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	if s.YField == "" {
		return fmt.Sprintf("%s (%s)", s.XField, s.Kind)
	}
	return fmt.Sprintf("%s por %s", s.YField, s.XField)
}

// intHint reads an integer hint. JSON numbers arrive as float64 and YAML
// or query values as int or string.
func (s Spec) intHint(key string) (int, bool, error) {
	raw, ok := s.Extra[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxIntHint {
			return 0, true, fmt.Errorf("%s must be an integer", key)
		}
		return int(v), true, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, true, fmt.Errorf("%s must be an integer", key)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
}
