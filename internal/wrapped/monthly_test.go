package wrapped

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacelane/api_wrapped/pkg/models"
)

func postInMonth(id string, month time.Month, engagement int) FilteredPost {
	return FilteredPost{
		PostRecord: models.PostRecord{
			ID:         id,
			Engagement: models.PostEngagement{Likes: models.Count(engagement)},
		},
		PublishedTime: time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildMonthlyCalendarOrder(t *testing.T) {
	// Posts arrive out of calendar order
	posts := []FilteredPost{
		postInMonth("nov", time.November, 1),
		postInMonth("mar", time.March, 2),
		postInMonth("mar2", time.March, 3),
		postInMonth("jan", time.January, 4),
	}
	acc := Aggregate(posts)

	breakdown, most, least := BuildMonthly(posts, acc.Engagements, "pt-BR")

	require.Len(t, breakdown, 3)
	assert.Equal(t, "janeiro", breakdown[0].Month)
	assert.Equal(t, "março", breakdown[1].Month)
	assert.Equal(t, "novembro", breakdown[2].Month)

	assert.Equal(t, 2, breakdown[1].Posts)
	assert.Equal(t, 5, breakdown[1].Engagement)

	assert.Equal(t, "março", most)
	assert.Equal(t, "janeiro", least)
}

func TestBuildMonthlyPostsSumMatchesTotal(t *testing.T) {
	posts := []FilteredPost{
		postInMonth("a", time.May, 0),
		postInMonth("b", time.May, 0),
		postInMonth("c", time.August, 0),
	}
	acc := Aggregate(posts)

	breakdown, _, _ := BuildMonthly(posts, acc.Engagements, "en-US")

	sum := 0
	for _, entry := range breakdown {
		sum += entry.Posts
	}
	assert.Equal(t, len(posts), sum)
}

func TestBuildMonthlyTiesPreferEarliestMonth(t *testing.T) {
	posts := []FilteredPost{
		postInMonth("jul", time.July, 0),
		postInMonth("feb", time.February, 0),
	}
	acc := Aggregate(posts)

	_, most, least := BuildMonthly(posts, acc.Engagements, "en-US")

	// Both months have one post; earliest calendar month wins both titles
	assert.Equal(t, "february", most)
	assert.Equal(t, "february", least)
}

func TestBuildMonthlyMostAndLeastActive(t *testing.T) {
	posts := make([]FilteredPost, 0, 9)
	for i := 0; i < 5; i++ {
		posts = append(posts, postInMonth("a", time.April, 0))
	}
	for i := 0; i < 3; i++ {
		posts = append(posts, postInMonth("b", time.June, 0))
	}
	posts = append(posts, postInMonth("c", time.October, 0))
	acc := Aggregate(posts)

	breakdown, most, least := BuildMonthly(posts, acc.Engagements, "en-US")

	require.Len(t, breakdown, 3)
	assert.Equal(t, "april", most)
	assert.Equal(t, "october", least)
}

func TestBuildMonthlyEmpty(t *testing.T) {
	breakdown, most, least := BuildMonthly(nil, nil, "pt-BR")

	assert.NotNil(t, breakdown)
	assert.Len(t, breakdown, 0)
	assert.Equal(t, "", most)
	assert.Equal(t, "", least)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "janeiro", MonthName("pt-BR", time.January))
	assert.Equal(t, "dezembro", MonthName("pt-BR", time.December))
	assert.Equal(t, "march", MonthName("en-US", time.March))
	// Unknown locales fall back to en-US
	assert.Equal(t, "march", MonthName("fr-FR", time.March))
	assert.True(t, SupportedLocale("pt-BR"))
	assert.False(t, SupportedLocale("fr-FR"))
}
