package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedx/transitions-kpi/pkg/models"
)

func scrapedRecords() []models.Record {
	return []models.Record{
		{
			Issue: "OSPR-1",
			States: map[string]models.StateDuration{
				"Needs Triage":            {Days: 0, Seconds: 3600},
				"Awaiting Prioritization": {Days: 1, Seconds: 0},
			},
			Resolved: "2016-03-01T10:30:00Z",
		},
		{Issue: "OSPR-2", Error: "boom"},
	}
}

func TestReportCompact(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, report(scrapedRecords(), false, false, &out))
	output := out.String()

	// diagnostics come before the metric blocks, in record order
	errIdx := strings.Index(output, "Error in ticket OSPR-2: boom")
	triageIdx := strings.Index(output, "Average time spent in Needs Triage")
	require.NotEqual(t, -1, errIdx)
	require.NotEqual(t, -1, triageIdx)
	assert.Less(t, errIdx, triageIdx)

	assert.Contains(t, output, "Average time spent in Needs Triage, over 1 tickets\n\t0:1:0:0\n")
	assert.Contains(t, output, "Average time spent in engineering states, over 1 tickets\n\t1:1:0:0\n")
	assert.Contains(t, output, "Average time spent in team backlog, over 1 tickets\n\t1:0:0:0\n")
	assert.Contains(t, output, "Average time spent in product review, over 0 tickets\n\tno data for this metric\n")

	// diagnostics are off, so the stateless error record gets no notice
	assert.NotContains(t, output, "No states yet")
}

func TestReportPretty(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, report(scrapedRecords(), false, true, &out))
	output := out.String()

	assert.Contains(t, output, "\t0 days, 1 hours, 0 minutes, 0 seconds\n")
	assert.Contains(t, output, "\t1 days, 1 hours, 0 minutes, 0 seconds\n")
	assert.Contains(t, output, "No states yet for newly-opened ticket OSPR-2")
}

func TestReportBadRecordSet(t *testing.T) {
	records := []models.Record{{Issue: "OSPR-1", Resolved: "not a timestamp"}}

	err := report(records, false, false, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OSPR-1")
}
