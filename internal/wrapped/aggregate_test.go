package wrapped

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacelane/api_wrapped/pkg/models"
)

func post(id, content string, likes, comments, shares int) FilteredPost {
	return FilteredPost{PostRecord: models.PostRecord{
		ID:      id,
		Content: content,
		Engagement: models.PostEngagement{
			Likes:    models.Count(likes),
			Comments: models.Count(comments),
			Shares:   models.Count(shares),
		},
	}}
}

func TestAggregateSinglePost(t *testing.T) {
	acc := Aggregate([]FilteredPost{
		post("p1", "Great day! #ai #growth #ai", 10, 2, 1),
	})

	assert.Equal(t, 1, acc.Posts)
	assert.Equal(t, 13, acc.TotalEngagement())
	assert.Equal(t, []int{13}, acc.Engagements)
	// Great / day! / #growth count; the two "#ai" tokens are too short
	assert.Equal(t, 3, acc.Words)
	assert.Equal(t, 2, acc.HashtagCounts["#ai"])
	assert.Equal(t, 1, acc.HashtagCounts["#growth"])
	assert.Equal(t, []string{"#ai", "#growth"}, acc.HashtagOrder)
}

func TestAggregateTotals(t *testing.T) {
	acc := Aggregate([]FilteredPost{
		post("a", "launching something today", 1, 2, 3),
		post("b", "", 4, 0, 0),
		post("c", "  spaced   tokens  ", 0, 0, 5),
	})

	assert.Equal(t, 3, acc.Posts)
	assert.Equal(t, 5, acc.Likes)
	assert.Equal(t, 2, acc.Comments)
	assert.Equal(t, 8, acc.Shares)
	assert.Equal(t, 15, acc.TotalEngagement())
	assert.Equal(t, []int{6, 4, 5}, acc.Engagements)
	assert.Equal(t, 5, acc.Words)
}

func TestAggregateEmptyInput(t *testing.T) {
	acc := Aggregate(nil)

	assert.Equal(t, 0, acc.Posts)
	assert.Equal(t, 0, acc.TotalEngagement())
	assert.Equal(t, 0, acc.Words)
	assert.Empty(t, acc.HashtagCounts)
}

func TestAggregateHashtagGrammar(t *testing.T) {
	acc := Aggregate([]FilteredPost{
		post("a", "#snake_case #123 #tag-with-dash # lone", 0, 0, 0),
	})

	// '#tag-with-dash' matches only up to the dash; bare '#' never matches
	assert.Equal(t, 1, acc.HashtagCounts["#snake_case"])
	assert.Equal(t, 1, acc.HashtagCounts["#123"])
	assert.Equal(t, 1, acc.HashtagCounts["#tag"])
	assert.Len(t, acc.HashtagCounts, 3)
}

func TestAggregateHashtagsAreCaseSensitive(t *testing.T) {
	acc := Aggregate([]FilteredPost{
		post("a", "#AI #ai", 0, 0, 0),
	})

	assert.Equal(t, 1, acc.HashtagCounts["#AI"])
	assert.Equal(t, 1, acc.HashtagCounts["#ai"])
}

func TestTopHashtagsOrderAndTies(t *testing.T) {
	acc := Aggregate([]FilteredPost{
		post("a", "#beta #alpha #beta", 0, 0, 0),
		post("b", "#gamma #alpha #beta", 0, 0, 0),
	})

	// beta=3, alpha=2, gamma=1
	top := acc.TopHashtags(8)
	require.Equal(t, []string{"#beta", "#alpha", "#gamma"}, top)

	// Equal counts keep first-encountered order
	tied := Aggregate([]FilteredPost{
		post("a", "#one #two #three", 0, 0, 0),
	})
	assert.Equal(t, []string{"#one", "#two", "#three"}, tied.TopHashtags(8))
	assert.Equal(t, []string{"#one", "#two"}, tied.TopHashtags(2))
}
