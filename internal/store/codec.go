package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeRecords parses container bytes into their raw records. Records
// keep their loose as-stored shape; normalization happens separately so
// containers written by any prior version can still be read.
func DecodeRecords(data []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptContainer, err)
	}
	if records == nil {
		// "null" decodes cleanly but is not a record sequence
		return nil, fmt.Errorf("%w: not a JSON array", ErrCorruptContainer)
	}
	return records, nil
}

// EncodeContainer renders a record collection as pretty-printed JSON.
// HTML escaping is off so links and non-ASCII text stay readable in the
// file.
func EncodeContainer(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode container: %w", err)
	}
	return buf.Bytes(), nil
}
