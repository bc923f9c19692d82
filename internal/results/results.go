// Package results serializes benchmark outcomes for machine
// consumption: a JSON stream for one-off runs and a SQLite store for
// comparing runs over time (e.g. before/after a layout change).
package results

import (
	"fmt"
	"io"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"github.com/quietlab/spscbench/internal/bench"
)

// Record is one flattened benchmark result.
type Record struct {
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Items       uint64    `json:"items"`
	Trials      int       `json:"trials"`
	MeanNs      int64     `json:"mean_ns"`
	MinNs       int64     `json:"min_ns"`
	MaxNs       int64     `json:"max_ns"`
	ItemsPerSec float64   `json:"items_per_sec"`
	MeanCycles  uint64    `json:"mean_cycles,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// FromResult flattens a bench.Result into a Record stamped with now.
func FromResult(r bench.Result) Record {
	return Record{
		Name:        r.Name,
		Capacity:    r.Capacity,
		Items:       r.Items,
		Trials:      len(r.Trials),
		MeanNs:      r.Mean().Nanoseconds(),
		MinNs:       r.Min().Nanoseconds(),
		MaxNs:       r.Max().Nanoseconds(),
		ItemsPerSec: r.ItemsPerSec(),
		MeanCycles:  r.MeanCycles(),
		RecordedAt:  time.Now().UTC(),
	}
}

// WriteJSON writes the records as a single JSON array followed by a
// newline.
func WriteJSON(w io.Writer, recs []Record) error {
	data, err := sonnet.Marshal(recs)
	if err != nil {
		return fmt.Errorf("results: encode: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("results: write: %w", err)
	}
	return nil
}

// ReadJSON decodes a record array written by WriteJSON.
func ReadJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("results: read: %w", err)
	}
	var recs []Record
	if err := sonnet.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("results: decode: %w", err)
	}
	return recs, nil
}
