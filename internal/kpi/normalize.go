package kpi

import (
	"fmt"
	"time"

	"github.com/openedx/transitions-kpi/pkg/models"
)

// resolvedLayouts are the timestamp shapes the scraper has been observed to
// emit for resolution dates, most specific first.
var resolvedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizedRecord is a Record with its serialized fields resolved into
// in-memory values: durations decoded, resolution timestamp materialized.
type NormalizedRecord struct {
	Issue string

	// States is nil when the ticket has not transitioned yet
	States map[string]time.Duration

	// ResolvedAt is the resolution time, or "now" for still-open tickets so
	// they remain visible to resolved-within-N-days windows downstream
	ResolvedAt time.Time

	Error string
	Debug string
}

// Normalize resolves one raw record. The now function supplies the wall-clock
// substitute for unresolved tickets.
func Normalize(rec models.Record, now func() time.Time) (NormalizedRecord, error) {
	normalized := NormalizedRecord{
		Issue: rec.Issue,
		Error: rec.Error,
		Debug: rec.Debug,
	}

	if rec.Resolved != "" {
		resolvedAt, err := parseResolved(rec.Resolved)
		if err != nil {
			return NormalizedRecord{}, fmt.Errorf("ticket %s: %v", rec.Issue, err)
		}
		normalized.ResolvedAt = resolvedAt
	} else {
		normalized.ResolvedAt = now()
	}

	if rec.States != nil {
		normalized.States = DecodeStates(rec.States)
	}

	return normalized, nil
}

// NormalizeAll normalizes the full record set, preserving order.
func NormalizeAll(records []models.Record, now func() time.Time) ([]NormalizedRecord, error) {
	normalized := make([]NormalizedRecord, 0, len(records))
	for _, rec := range records {
		n, err := Normalize(rec, now)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, n)
	}
	return normalized, nil
}

func parseResolved(value string) (time.Time, error) {
	for _, layout := range resolvedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable resolution timestamp %q", value)
}
