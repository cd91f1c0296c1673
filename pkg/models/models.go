// Package models defines data structures shared across the application.
package models

import (
	"encoding/json"
	"fmt"
)

// StateDuration is the serialized form of an elapsed time: a (days, seconds)
// pair encoded on the wire as a 2-element JSON array. The upstream serializer
// split durations into whole days plus residual seconds; the invariant is
// 0 <= Seconds < 86400, but decoding is intentionally permissive and
// out-of-range pairs are accepted as-is.
type StateDuration struct {
	// Days is the whole-day component of the elapsed time
	Days int

	// Seconds is the residual component, normally in [0, 86400)
	Seconds int
}

// UnmarshalJSON decodes a [days, seconds] array.
func (d *StateDuration) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("state duration must be a [days, seconds] array: %v", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("state duration must have exactly 2 elements, got %d", len(pair))
	}
	d.Days = pair[0]
	d.Seconds = pair[1]
	return nil
}

// MarshalJSON encodes the pair back into a [days, seconds] array.
func (d StateDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{d.Days, d.Seconds})
}

// Record is one issue-tracker ticket snapshot as produced by the scraper and
// cached in the states file.
type Record struct {
	// Issue is the ticket identifier (e.g., "OSPR-1234")
	Issue string `json:"issue"`

	// States maps a workflow state name to the time the ticket spent in it.
	// Present only once the ticket has transitioned at least once.
	States map[string]StateDuration `json:"states,omitempty"`

	// Resolved is the resolution timestamp; empty while the ticket is open
	Resolved string `json:"resolved,omitempty"`

	// Labels are the ticket's labels, passed through for cache fidelity
	Labels []string `json:"labels,omitempty"`

	// Error is set when the scrape failed for this ticket; the record is
	// reported but carries no trustworthy state data
	Error string `json:"error,omitempty"`

	// Debug carries an informational note from the scraper
	Debug string `json:"debug,omitempty"`
}
