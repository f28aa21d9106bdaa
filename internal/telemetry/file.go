package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadEvents loads a recorded events file: a JSON array of RawEvent as
// written by WriteEvents or by the capture tool.
func ReadEvents(path string) ([]RawEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}

	var events []RawEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to parse events file %s: %w", path, err)
	}

	return events, nil
}

// WriteEvents stores events as a JSON array.
func WriteEvents(events []RawEvent, path string) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
