package kpi

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNoData is returned when a metric accumulated no tickets: an average is
// undefined and must never silently render as 0:0:0:0.
var ErrNoData = errors.New("no tickets with data for this metric")

// Style selects one of the two mutually exclusive duration renderings.
type Style int

const (
	// StyleCompact renders the average as days:hours:minutes:seconds
	StyleCompact Style = iota

	// StylePretty renders the average with spelled-out unit names
	StylePretty
)

// Metric labels, in report order.
const (
	labelTriage      = "Average time spent in Needs Triage"
	labelEngineering = "Average time spent in engineering states"
	labelBacklog     = "Average time spent in team backlog"
	labelProduct     = "Average time spent in product review"
)

// FormatAverage renders one metric block: a header naming the metric and its
// ticket count, then an indented value line with the average decomposed into
// days, hours, minutes and seconds. A zero count returns ErrNoData.
func FormatAverage(total time.Duration, count int, label string, style Style) (string, error) {
	if count == 0 {
		return "", fmt.Errorf("%s: %w", label, ErrNoData)
	}

	avg := total / time.Duration(count)
	days := int(avg / (24 * time.Hour))
	remainder := avg % (24 * time.Hour)
	hours := int(remainder / time.Hour)
	minutes := int(remainder % time.Hour / time.Minute)
	seconds := int(remainder % time.Minute / time.Second)

	header := fmt.Sprintf("\n%s, over %d tickets\n", label, count)
	if style == StylePretty {
		return header + fmt.Sprintf("\t%d days, %d hours, %d minutes, %d seconds\n", days, hours, minutes, seconds), nil
	}
	return header + fmt.Sprintf("\t%d:%d:%d:%d\n", days, hours, minutes, seconds), nil
}

// WriteReport renders all four metric blocks in fixed order. A metric with a
// zero count still gets its header, with an explicit no-data value line in
// place of an average.
func WriteReport(w io.Writer, totals Totals, style Style) error {
	metrics := []struct {
		label string
		acc   Accumulator
	}{
		{labelTriage, totals.Triage},
		{labelEngineering, totals.Engineering},
		{labelBacklog, totals.Backlog},
		{labelProduct, totals.Product},
	}

	for _, m := range metrics {
		block, err := FormatAverage(m.acc.Total, m.acc.Count, m.label, style)
		if errors.Is(err, ErrNoData) {
			block = fmt.Sprintf("\n%s, over 0 tickets\n\tno data for this metric\n", m.label)
		} else if err != nil {
			return err
		}
		if _, err := io.WriteString(w, block); err != nil {
			return fmt.Errorf("failed to write report: %v", err)
		}
	}

	return nil
}
