package kpi

import (
	"fmt"
	"io"
	"time"
)

// Accumulator is a running (total duration, ticket count) pair for one metric.
type Accumulator struct {
	Total time.Duration
	Count int
}

func (a *Accumulator) add(d time.Duration) {
	a.Total += d
	a.Count++
}

// Totals holds the four metric accumulators produced by one fold. Triage and
// Engineering share a denominator: both count every ticket with state data.
type Totals struct {
	Triage      Accumulator
	Engineering Accumulator
	Backlog     Accumulator
	Product     Accumulator
}

// FoldOptions controls diagnostic output during a fold.
type FoldOptions struct {
	// Debug enables per-record debug notes and no-states-yet notices
	Debug bool

	// Pretty also enables no-states-yet notices (the verbose report mode
	// surfaces them alongside the metric blocks)
	Pretty bool

	// Out receives diagnostic lines in record order
	Out io.Writer
}

// Fold accumulates the four metrics over the normalized record set in one
// pass. Records flagged with a scrape error are reported but still processed;
// records without state data are reported (when diagnostics are on) and
// skipped. A non-empty state map missing the Needs Triage entry aborts the
// fold: the intake state is recorded for every ticket that transitioned, so
// its absence means the record set is corrupt and the shared triage and
// engineering denominator would be wrong.
func Fold(records []NormalizedRecord, opts FoldOptions) (Totals, error) {
	var totals Totals

	for _, rec := range records {
		if rec.Error != "" {
			fmt.Fprintf(opts.Out, "Error in ticket %s: %s\n", rec.Issue, rec.Error)
		}
		if opts.Debug && rec.Debug != "" {
			fmt.Fprintf(opts.Out, "Debug: ticket %s: %s\n", rec.Issue, rec.Debug)
		}

		if len(rec.States) == 0 {
			if opts.Debug || opts.Pretty {
				fmt.Fprintf(opts.Out, "No states yet for newly-opened ticket %s\n", rec.Issue)
			}
			continue
		}

		triage, ok := rec.States[StateNeedsTriage]
		if !ok {
			return Totals{}, fmt.Errorf("ticket %s: state data has no %q entry", rec.Issue, StateNeedsTriage)
		}
		totals.Triage.add(triage)

		var engineering time.Duration
		for state, d := range rec.States {
			if IsEngineeringState(state) {
				engineering += d
			}
		}
		totals.Engineering.add(engineering)

		if d, ok := rec.States[StateAwaitingPrioritization]; ok && d != 0 {
			totals.Backlog.add(d)
		}
		if d, ok := rec.States[StateProductReview]; ok && d != 0 {
			totals.Product.add(d)
		}
	}

	return totals, nil
}
