package legacy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseDump parses a legacy dump, keeping the keys in file order. Numbers are
// returned as json.Number; nested values are decoded generically.
//
// Precondition: data must be a JSON object.
// Postcondition: returns the entries in file order or a non-nil error.
func ParseDump(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing legacy dump: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("parsing legacy dump: top level value is not an object")
	}

	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing legacy dump: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing legacy dump: unexpected token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parsing legacy dump: value of %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing legacy dump: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parsing legacy dump: trailing data after object")
	}
	return entries, nil
}
