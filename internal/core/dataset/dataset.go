package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindString   Kind = "string"
	KindCategory Kind = "category"
)

// categoryMaxDistinct is the distinct-value ceiling under which a string
// column is reported as a category.
const categoryMaxDistinct = 20

// Numeric reports whether values of this kind can feed a reduction.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

var (
	ErrNoColumns      = errors.New("dataset has no columns")
	ErrColumnMismatch = errors.New("record columns differ from dataset header")
	ErrDuplicateName  = errors.New("duplicate column name")
)

// Column describes one named column of a Dataset.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Record maps column name to value. Values are normalised to int64,
// float64, string or nil (missing).
type Record map[string]any

// MarshalJSON writes non-finite floats as null.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r))
	for k, v := range r {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = nil
		}
		out[k] = v
	}
	return json.Marshal(out)
}

// Dataset is an ordered, immutable sequence of records sharing one column set.
type Dataset struct {
	columns []Column
	index   map[string]int
	records []Record
}

// New builds a Dataset from a header and records. Every record must carry
// exactly the header's keys; values are normalised and column kinds inferred.
func New(header []string, records []Record) (*Dataset, error) {
	if len(header) == 0 {
		return nil, ErrNoColumns
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrNoColumns, i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		index[name] = i
	}

	rows := make([]Record, len(records))
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: record %d has %d columns, header has %d", ErrColumnMismatch, i, len(rec), len(header))
		}
		row := make(Record, len(header))
		for _, name := range header {
			v, ok := rec[name]
			if !ok {
				return nil, fmt.Errorf("%w: record %d is missing %q", ErrColumnMismatch, i, name)
			}
			row[name] = Normalize(v)
		}
		rows[i] = row
	}

	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Kind: inferKind(name, rows)}
	}

	return &Dataset{columns: columns, index: index, records: rows}, nil
}

// Normalize converts a raw value into the dataset's value domain.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int64:
		return val
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case int16:
		return int64(val)
	case int8:
		return int64(val)
	case uint32:
		return int64(val)
	case uint16:
		return int64(val)
	case uint8:
		return int64(val)
	case float64:
		return val
	case float32:
		return float64(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// Number returns the float value of a normalised numeric value.
// Non-numeric and missing values report false.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case int64:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// Finite reports whether v is a numeric value usable in a reduction.
func Finite(v any) (float64, bool) {
	f, ok := Number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func inferKind(name string, rows []Record) Kind {
	sawInt, sawFloat, sawString := false, false, false
	distinct := make(map[string]struct{})
	for _, row := range rows {
		switch val := row[name].(type) {
		case int64:
			sawInt = true
		case float64:
			sawFloat = true
		case string:
			sawString = true
			distinct[val] = struct{}{}
		}
	}

	switch {
	case sawString:
		if len(distinct) <= categoryMaxDistinct {
			return KindCategory
		}
		return KindString
	case sawFloat:
		return KindFloat
	case sawInt:
		return KindInteger
	default:
		// all values missing: nothing numeric to reduce
		return KindString
	}
}

// Columns returns the dataset header in order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// ColumnNames returns the header names in order.
func (d *Dataset) ColumnNames() []string {
	out := make([]string, len(d.columns))
	for i, c := range d.columns {
		out[i] = c.Name
	}
	return out
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Value returns the value at (row, column), or nil when either is out of range.
func (d *Dataset) Value(row int, column string) any {
	if row < 0 || row >= len(d.records) {
		return nil
	}
	return d.records[row][column]
}

// Records returns copies of all records.
func (d *Dataset) Records() []Record {
	return d.Head(len(d.records))
}

// Head returns copies of the first n records.
func (d *Dataset) Head(n int) []Record {
	if n > len(d.records) {
		n = len(d.records)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		row := make(Record, len(d.records[i]))
		for k, v := range d.records[i] {
			row[k] = v
		}
		out[i] = row
	}
	return out
}

type wireDataset struct {
	Columns []Column `json:"columns"`
	Records []Record `json:"records"`
}

// MarshalJSON encodes the header and records. Non-finite values are
// written as null and decode as missing.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDataset{Columns: d.columns, Records: d.records})
}

// UnmarshalJSON decodes a dataset previously produced by MarshalJSON.
// Integers survive the round trip because numbers are decoded as json.Number.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var wire wireDataset
	if err := dec.Decode(&wire); err != nil {
		return err
	}

	header := make([]string, len(wire.Columns))
	for i, c := range wire.Columns {
		header[i] = c.Name
	}
	decoded, err := New(header, wire.Records)
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}
