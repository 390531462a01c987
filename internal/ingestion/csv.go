package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

func parseCSV(r io.Reader, maxRows int) ([]string, []dataset.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: empty file", ErrInvalidDataset)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	header, err := cleanHeader(first)
	if err != nil {
		return nil, nil, err
	}

	var records []dataset.Record
	for line := 2; ; line++ {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
		if len(records) == maxRows {
			return nil, nil, tooManyRows(maxRows)
		}
		rec, err := rowRecord(header, cells)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return header, records, nil
}
