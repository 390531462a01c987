package ingestion

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

// Format is an upload encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists the accepted upload formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatXLSX}

// DefaultMaxRows is the largest dataset accepted when no limit is configured.
const DefaultMaxRows = 100000

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTooManyRows       = errors.New("dataset exceeds the row limit")
	ErrInvalidDataset    = errors.New("invalid dataset")
)

// ParseFormat resolves an explicit format name first and the file extension second.
func ParseFormat(explicit, filename string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(explicit))
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	}
	for _, f := range Formats {
		if Format(name) == f {
			return f, nil
		}
	}
	if name == "" {
		return "", fmt.Errorf("%w: no format given and no file extension", ErrUnsupportedFormat)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Parse decodes r in the given format. maxRows <= 0 applies DefaultMaxRows.
func Parse(r io.Reader, format Format, maxRows int) (*dataset.Dataset, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	var (
		header  []string
		records []dataset.Record
		err     error
	)
	switch format {
	case FormatCSV:
		header, records, err = parseCSV(r, maxRows)
	case FormatJSON:
		header, records, err = parseJSON(r, maxRows)
	case FormatXLSX:
		header, records, err = parseXLSX(r, maxRows)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	ds, err := dataset.New(header, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return ds, nil
}

func tooManyRows(maxRows int) error {
	return fmt.Errorf("%w: more than %d rows", ErrTooManyRows, maxRows)
}

// missingMarkers are the NaN spellings spreadsheet and dataframe exports
// write for an empty numeric cell.
var missingMarkers = map[string]struct{}{
	"NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
}

// parseCell infers the value of a text cell: empty or a NaN marker is
// missing, then integer, then finite float, else the trimmed string.
func parseCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if _, ok := missingMarkers[s]; ok {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// cleanHeader trims header names and rejects blanks and duplicates.
func cleanHeader(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrInvalidDataset)
	}
	header := make([]string, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrInvalidDataset, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidDataset, name)
		}
		seen[name] = struct{}{}
		header[i] = name
	}
	return header, nil
}

// rowRecord maps cells onto header names. Short rows are padded with missing values.
func rowRecord(header, cells []string) (dataset.Record, error) {
	if len(cells) > len(header) {
		return nil, fmt.Errorf("%w: row has %d cells, header has %d", ErrInvalidDataset, len(cells), len(header))
	}
	rec := make(dataset.Record, len(header))
	for i, name := range header {
		if i < len(cells) {
			rec[name] = parseCell(cells[i])
		} else {
			rec[name] = nil
		}
	}
	return rec, nil
}
