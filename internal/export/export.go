// Package export writes stored datasets back out as CSV, JSON or XLSX.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// MediaType returns the Content-Type of an export format.
func (f Format) MediaType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// ParseFormat validates an export format name. Empty means CSV.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Write encodes ds to w. insights is only used by the XLSX workbook.
func Write(w io.Writer, ds *dataset.Dataset, format Format, insights string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, ds)
	case FormatJSON:
		return WriteJSON(w, ds)
	case FormatXLSX:
		return WriteXLSX(w, ds, insights)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteCSV writes a header row and one row per record. Missing values are empty cells.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	header := ds.ColumnNames()
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i := 0; i < ds.Len(); i++ {
		for j, name := range header {
			row[j] = cellText(ds.Value(i, name))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes an array of records with keys in header order.
// Missing and non-finite values are written as null.
func WriteJSON(w io.Writer, ds *dataset.Dataset) error {
	bw := bufio.NewWriter(w)
	header := ds.ColumnNames()
	keys := make([][]byte, len(header))
	for i, name := range header {
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	bw.WriteByte('[')
	for i := 0; i < ds.Len(); i++ {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('{')
		for j, name := range header {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.Write(keys[j])
			bw.WriteByte(':')
			v, err := json.Marshal(jsonValue(ds.Value(i, name)))
			if err != nil {
				return err
			}
			bw.Write(v)
		}
		bw.WriteByte('}')
	}
	bw.WriteByte(']')
	return bw.Flush()
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	}
	return fmt.Sprint(v)
}

func jsonValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
