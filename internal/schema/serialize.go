package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/insterion/ev-log/internal/model"
)

// Serialize encodes a state as indented JSON, the format used for the
// stored value, clipboard export, and backup files alike.
func Serialize(st model.State) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// Decode parses a JSON payload and sanitizes it into a valid State.
// Only undecodable JSON is an error; a decodable payload of the wrong
// shape sanitizes to defaults. Round trip holds for canonical states:
// Decode(Serialize(s)) == s.
func Decode(data []byte) (model.State, error) {
	return DecodeAt(data, time.Now())
}

// DecodeAt is Decode with an explicit clock for date defaulting.
func DecodeAt(data []byte, now time.Time) (model.State, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.State{}, fmt.Errorf("parsing state JSON: %w", err)
	}
	return SanitizeStateAt(raw, now), nil
}
