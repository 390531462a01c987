package aggregation

// Supported aggregation operators.
const (
	OpCount = "count"
	OpSum   = "sum"
	OpMean  = "mean"
	OpMin   = "min"
	OpMax   = "max"
)

// CountColumn is the value column name of a count view built without a value column.
const CountColumn = "count"

// Row is one group of an aggregated view.
type Row struct {
	Group string  `json:"group"`
	X     float64 `json:"x,omitempty"` // numeric position, set when View.NumericX
	Value float64 `json:"value"`
	Count int64   `json:"count"` // values folded into this row

	key any // original group value, keeps numeric ordering on re-aggregation
}

// View is a dataset reduced to one row per group, ready for rendering.
type View struct {
	GroupBy     string `json:"group_by"`
	ValueColumn string `json:"value_column"`
	Op          string `json:"op"`
	NumericX    bool   `json:"numeric_x"`
	Rows        []Row  `json:"rows"`
	Skipped     int    `json:"skipped_count"`
}

// Len returns the number of rows.
func (v *View) Len() int {
	return len(v.Rows)
}

// Labels returns the group labels in row order.
func (v *View) Labels() []string {
	out := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Group
	}
	return out
}

// Values returns the reduced values in row order.
func (v *View) Values() []float64 {
	out := make([]float64, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Value
	}
	return out
}
