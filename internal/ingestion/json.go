package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

// parseJSON accepts an array of objects or an object with a "records" array.
// The header is the union of keys in first-seen order; absent keys are missing values.
func parseJSON(r io.Reader, maxRows int) ([]string, []dataset.Record, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil, fmt.Errorf("%w: empty document", ErrInvalidDataset)
	}

	var rows []json.RawMessage
	if body[0] == '{' {
		var wrapped struct {
			Records []json.RawMessage `json:"records"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
		if wrapped.Records == nil {
			return nil, nil, fmt.Errorf("%w: object has no \"records\" array", ErrInvalidDataset)
		}
		rows = wrapped.Records
	} else if err := json.Unmarshal(body, &rows); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if len(rows) > maxRows {
		return nil, nil, tooManyRows(maxRows)
	}

	var header []string
	seen := map[string]struct{}{}
	decoded := make([]map[string]any, len(rows))
	for i, raw := range rows {
		keys, values, err := decodeObject(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %v", ErrInvalidDataset, i, err)
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				header = append(header, k)
			}
		}
		decoded[i] = values
	}
	if len(header) == 0 {
		return nil, nil, fmt.Errorf("%w: no columns", ErrInvalidDataset)
	}

	records := make([]dataset.Record, len(decoded))
	for i, values := range decoded {
		rec := make(dataset.Record, len(header))
		for _, k := range header {
			rec[k] = values[k]
		}
		records[i] = rec
	}
	return header, records, nil
}

// decodeObject reads one JSON object keeping its key order. Nested values
// are kept as their JSON text.
func decodeObject(raw json.RawMessage) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected an object")
	}

	var keys []string
	values := map[string]any{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		value, err := scalar(v)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = value
	}
	return keys, values, nil
}

func scalar(v json.RawMessage) (any, error) {
	switch bytes.TrimSpace(v)[0] {
	case '{', '[':
		return string(v), nil
	}
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
