package wrapped

import (
	"time"

	"pacelane/api_wrapped/pkg/models"
)

// FilteredPost is a post record that passed the year filter, annotated
// with its parsed publication time.
type FilteredPost struct {
	models.PostRecord
	PublishedTime time.Time
}

// Timestamp layouts accepted for publishedAt, tried in order. The zoned
// layouts keep the offset the record was persisted with; the naive ones
// are interpreted in the configured location.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a publishedAt value. The returned time keeps the
// timezone basis the value was persisted with; no conversion is applied.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterYear retains the records whose publication timestamp parses and
// falls in the target year. Unparseable or missing timestamps exclude the
// record, they are never defaulted.
func FilterYear(records []models.PostRecord, year int, loc *time.Location) []FilteredPost {
	filtered := make([]FilteredPost, 0, len(records))
	for _, record := range records {
		published, ok := ParseTimestamp(record.PublishedAt, loc)
		if !ok || published.Year() != year {
			continue
		}
		filtered = append(filtered, FilteredPost{PostRecord: record, PublishedTime: published})
	}
	return filtered
}
