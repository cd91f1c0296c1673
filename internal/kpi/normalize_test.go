package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedx/transitions-kpi/pkg/models"
)

var testNow = time.Date(2016, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func TestNormalizeResolvedTimestamp(t *testing.T) {
	testCases := []struct {
		name     string
		resolved string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "RFC3339",
			resolved: "2016-03-01T10:30:00Z",
			expected: time.Date(2016, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "Tracker format with offset",
			resolved: "2016-03-01T10:30:00.000-0700",
			expected: time.Date(2016, 3, 1, 10, 30, 0, 0, time.FixedZone("", -7*3600)),
		},
		{
			name:     "Space-separated datetime",
			resolved: "2016-03-01 10:30:00",
			expected: time.Date(2016, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "Date only",
			resolved: "2016-03-01",
			expected: time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Garbage timestamp",
			resolved: "yesterday-ish",
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := models.Record{Issue: "OSPR-1", Resolved: tc.resolved}
			normalized, err := Normalize(rec, fixedNow)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "OSPR-1")
				return
			}

			require.NoError(t, err)
			assert.True(t, normalized.ResolvedAt.Equal(tc.expected),
				"expected %v, got %v", tc.expected, normalized.ResolvedAt)
		})
	}
}

func TestNormalizeUnresolvedUsesNow(t *testing.T) {
	rec := models.Record{Issue: "OSPR-2"}

	normalized, err := Normalize(rec, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, testNow, normalized.ResolvedAt,
		"an open ticket should be treated as resolving at report time")
}

func TestNormalizeDecodesStates(t *testing.T) {
	rec := models.Record{
		Issue: "OSPR-3",
		States: map[string]models.StateDuration{
			StateNeedsTriage:   {Days: 0, Seconds: 3600},
			StateProductReview: {Days: 2, Seconds: 30},
		},
		Error: "scrape hiccup",
		Debug: "note",
	}

	normalized, err := Normalize(rec, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "OSPR-3", normalized.Issue)
	assert.Equal(t, "scrape hiccup", normalized.Error)
	assert.Equal(t, "note", normalized.Debug)
	assert.Equal(t, time.Hour, normalized.States[StateNeedsTriage])
	assert.Equal(t, 48*time.Hour+30*time.Second, normalized.States[StateProductReview])
}

func TestNormalizeAbsentStatesStayAbsent(t *testing.T) {
	normalized, err := Normalize(models.Record{Issue: "OSPR-4"}, fixedNow)

	require.NoError(t, err)
	assert.Nil(t, normalized.States)
}

func TestNormalizeAll(t *testing.T) {
	records := []models.Record{
		{Issue: "OSPR-1", Resolved: "2016-03-01T10:30:00Z"},
		{Issue: "OSPR-2"},
	}

	normalized, err := NormalizeAll(records, fixedNow)

	require.NoError(t, err)
	require.Len(t, normalized, 2)
	assert.Equal(t, "OSPR-1", normalized[0].Issue)
	assert.Equal(t, "OSPR-2", normalized[1].Issue)

	// One bad record fails the whole batch
	records = append(records, models.Record{Issue: "OSPR-3", Resolved: "not a date"})
	_, err = NormalizeAll(records, fixedNow)
	assert.Error(t, err)
}
