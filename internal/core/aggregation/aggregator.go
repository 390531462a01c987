package aggregation

import (
	"github.com/shopspring/decimal"
)

// State is the running reduction of one group. Sum and Count are both kept
// so that mean needs no second pass.
type State struct {
	Sum   decimal.Decimal
	Count int64
	Best  decimal.Decimal // min or max seen so far
}

// Aggregator defines the reduce semantics of an aggregation operator.
// To add a new operator: implement this interface and register it in Operators.
type Aggregator interface {
	// Initial returns the group state after its first value.
	Initial(incoming decimal.Decimal) State

	// Apply folds an incoming value into an existing state.
	Apply(current State, incoming decimal.Decimal) State

	// Result reduces a state to the value reported for the group.
	Result(s State) decimal.Decimal
}

// Operators is the registry of all supported aggregation operators.
var Operators = map[string]Aggregator{
	OpCount: countAgg{},
	OpSum:   sumAgg{},
	OpMean:  meanAgg{},
	OpMin:   minAgg{},
	OpMax:   maxAgg{},
}

// ValidOperator reports whether op is a registered aggregation operator.
func ValidOperator(op string) bool {
	_, ok := Operators[op]
	return ok
}

func initial(v decimal.Decimal) State {
	return State{Sum: v, Count: 1, Best: v}
}

// countAgg counts values. The values themselves are ignored.
type countAgg struct{}

func (countAgg) Initial(v decimal.Decimal) State { return initial(v) }
func (countAgg) Apply(cur State, inc decimal.Decimal) State {
	cur.Count++
	cur.Sum = cur.Sum.Add(inc)
	return cur
}
func (countAgg) Result(s State) decimal.Decimal { return decimal.NewFromInt(s.Count) }

// sumAgg accumulates the exact sum.
type sumAgg struct{}

func (sumAgg) Initial(v decimal.Decimal) State { return initial(v) }
func (sumAgg) Apply(cur State, inc decimal.Decimal) State {
	cur.Count++
	cur.Sum = cur.Sum.Add(inc)
	return cur
}
func (sumAgg) Result(s State) decimal.Decimal { return s.Sum }

// meanAgg divides the exact sum by the count at the end.
type meanAgg struct{}

func (meanAgg) Initial(v decimal.Decimal) State { return initial(v) }
func (meanAgg) Apply(cur State, inc decimal.Decimal) State {
	cur.Count++
	cur.Sum = cur.Sum.Add(inc)
	return cur
}
func (meanAgg) Result(s State) decimal.Decimal {
	if s.Count <= 1 {
		return s.Sum
	}
	return s.Sum.Div(decimal.NewFromInt(s.Count))
}

// minAgg tracks the minimum value seen.
type minAgg struct{}

func (minAgg) Initial(v decimal.Decimal) State { return initial(v) }
func (minAgg) Apply(cur State, inc decimal.Decimal) State {
	cur.Count++
	cur.Sum = cur.Sum.Add(inc)
	if inc.LessThan(cur.Best) {
		cur.Best = inc
	}
	return cur
}
func (minAgg) Result(s State) decimal.Decimal { return s.Best }

// maxAgg tracks the maximum value seen.
type maxAgg struct{}

func (maxAgg) Initial(v decimal.Decimal) State { return initial(v) }
func (maxAgg) Apply(cur State, inc decimal.Decimal) State {
	cur.Count++
	cur.Sum = cur.Sum.Add(inc)
	if inc.GreaterThan(cur.Best) {
		cur.Best = inc
	}
	return cur
}
func (maxAgg) Result(s State) decimal.Decimal { return s.Best }
