// Package state persists a compact summary of the most recent collection
// cycle so the status command can show the last outcome without querying
// the metrics backend. The state file lives in the config directory, never
// in the instrument logs tree.
package state

import (
	"fmt"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// FileFailure mirrors one per-file collection error
type FileFailure struct {
	File    string `cbor:"file"`
	Kind    string `cbor:"kind"`
	Message string `cbor:"message"`
}

// LastRun summarizes one completed collection cycle
type LastRun struct {
	Timestamp   time.Time     `cbor:"timestamp"`
	SampleCount int           `cbor:"sample_count"`
	Pushed      bool          `cbor:"pushed"`
	Transport   string        `cbor:"transport"`
	Failures    []FileFailure `cbor:"failures,omitempty"`
}

// Save writes the run summary as CBOR to path
func Save(path string, run *LastRun) error {
	data, err := cbor.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run state: %w", err)
	}
	return nil
}

// Load reads a run summary previously written by Save
func Load(path string) (*LastRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run state: %w", err)
	}
	var run LastRun
	if err := cbor.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run state: %w", err)
	}
	return &run, nil
}
