package wrapped

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacelane/api_wrapped/pkg/models"
)

func TestParseTimestampLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		year  int
	}{
		{"rfc3339", "2025-06-15T10:30:00Z", true, 2025},
		{"rfc3339 with offset", "2025-06-15T10:30:00-03:00", true, 2025},
		{"rfc3339 nanos", "2025-06-15T10:30:00.123456Z", true, 2025},
		{"naive datetime", "2025-06-15T10:30:00", true, 2025},
		{"space separated", "2025-06-15 10:30:00", true, 2025},
		{"date only", "2025-06-15", true, 2025},
		{"empty", "", false, 0},
		{"garbage", "not-a-date", false, 0},
		{"partial", "2025-06", false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, ok := ParseTimestamp(tc.input, time.UTC)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.year, parsed.Year())
			}
		})
	}
}

func TestParseTimestampKeepsOffset(t *testing.T) {
	// Dec 31 23:00 -03:00 is already Jan 1 02:00 UTC; the persisted
	// offset decides the year, no conversion is applied
	parsed, ok := ParseTimestamp("2025-12-31T23:00:00-03:00", time.UTC)
	require.True(t, ok)
	assert.Equal(t, 2025, parsed.Year())
}

func TestFilterYear(t *testing.T) {
	records := []models.PostRecord{
		{ID: "in-1", PublishedAt: "2025-01-10T08:00:00Z"},
		{ID: "out-year", PublishedAt: "2024-12-31T23:59:59Z"},
		{ID: "in-2", PublishedAt: "2025-11-05"},
		{ID: "missing-ts"},
		{ID: "bad-ts", PublishedAt: "soon"},
	}

	filtered := FilterYear(records, 2025, time.UTC)

	require.Len(t, filtered, 2)
	assert.Equal(t, "in-1", filtered[0].ID)
	assert.Equal(t, "in-2", filtered[1].ID)
	assert.Equal(t, time.November, filtered[1].PublishedTime.Month())
}

func TestFilterYearEmptyInput(t *testing.T) {
	filtered := FilterYear(nil, 2025, time.UTC)
	assert.NotNil(t, filtered)
	assert.Len(t, filtered, 0)
}
