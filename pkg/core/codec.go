package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes the collection into the persisted slot format,
// a JSON array of {id, title, content, updatedAt}.
func Encode(notes Notes) ([]byte, error) {
	if notes == nil {
		notes = Notes{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return data, nil
}

// Decode parses a slot value. Anything that is not a JSON array of note-like
// records is rejected; there is no partial recovery.
func Decode(data []byte) (Notes, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("slot value is not a JSON array")
	}

	var notes Notes
	if err := json.Unmarshal(trimmed, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	if notes == nil {
		notes = Notes{}
	}
	return notes, nil
}
