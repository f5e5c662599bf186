package wrapped

import (
	"time"

	"pacelane/api_wrapped/pkg/models"
)

type monthBucket struct {
	posts      int
	engagement int
}

// BuildMonthly buckets the filtered posts by calendar month and derives
// the most and least active months. The breakdown is ordered by calendar
// month January through December; months without posts are absent. Ties
// for most/least active resolve to the earliest calendar month.
func BuildMonthly(posts []FilteredPost, engagements []int, locale string) (breakdown []models.MonthBreakdown, mostActive, leastActive string) {
	buckets := make(map[time.Month]*monthBucket)
	for i, post := range posts {
		month := post.PublishedTime.Month()
		bucket, ok := buckets[month]
		if !ok {
			bucket = &monthBucket{}
			buckets[month] = bucket
		}
		bucket.posts++
		bucket.engagement += engagements[i]
	}

	breakdown = make([]models.MonthBreakdown, 0, len(buckets))
	for month := time.January; month <= time.December; month++ {
		bucket, ok := buckets[month]
		if !ok {
			continue
		}
		breakdown = append(breakdown, models.MonthBreakdown{
			Month:      MonthName(locale, month),
			Posts:      bucket.posts,
			Engagement: bucket.engagement,
		})
	}

	if len(breakdown) == 0 {
		return breakdown, "", ""
	}

	most, least := breakdown[0], breakdown[0]
	for _, entry := range breakdown[1:] {
		if entry.Posts > most.Posts {
			most = entry
		}
		if entry.Posts < least.Posts {
			least = entry
		}
	}
	return breakdown, most.Month, least.Month
}
