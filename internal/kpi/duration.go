// Package kpi computes rolling average durations for workflow state metrics
// from a scraped ticket record set.
package kpi

import (
	"time"

	"github.com/openedx/transitions-kpi/pkg/models"
)

const secondsPerDay = 86400

// Decode converts a serialized (days, seconds) pair back into a duration.
// No validation is performed: a pair violating the 0 <= seconds < 86400
// invariant decodes to an out-of-range duration rather than an error.
func Decode(sd models.StateDuration) time.Duration {
	return time.Duration(sd.Days*secondsPerDay+sd.Seconds) * time.Second
}

// Encode is the inverse of Decode. Sub-second precision is discarded, which
// matches the storage format: the pair only ever carried whole seconds.
func Encode(d time.Duration) models.StateDuration {
	total := int(d / time.Second)
	return models.StateDuration{
		Days:    total / secondsPerDay,
		Seconds: total % secondsPerDay,
	}
}

// DecodeStates converts a record's serialized state map into durations.
func DecodeStates(states map[string]models.StateDuration) map[string]time.Duration {
	decoded := make(map[string]time.Duration, len(states))
	for state, sd := range states {
		decoded[state] = Decode(sd)
	}
	return decoded
}
