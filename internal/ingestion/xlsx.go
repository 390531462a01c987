package ingestion

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

// parseXLSX reads the first worksheet; its first row is the header.
func parseXLSX(r io.Reader, maxRows int) ([]string, []dataset.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidDataset)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	defer rows.Close()

	var (
		header  []string
		records []dataset.Record
	)
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
		if len(cells) == 0 {
			continue
		}
		if header == nil {
			if header, err = cleanHeader(cells); err != nil {
				return nil, nil, err
			}
			continue
		}
		if len(records) == maxRows {
			return nil, nil, tooManyRows(maxRows)
		}
		rec, err := rowRecord(header, cells)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("%w: first sheet is empty", ErrInvalidDataset)
	}
	return header, records, nil
}
