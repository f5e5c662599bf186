package wrapped

import (
	"sort"

	"pacelane/api_wrapped/pkg/models"
)

// RankTopPosts selects up to limit posts ordered by engagement metric
// descending. Posts with equal engagement keep their relative order from
// the filtered sequence; the sort must stay stable so that property holds.
func RankTopPosts(posts []FilteredPost, engagements []int, limit int) []models.TopPost {
	indices := make([]int, len(posts))
	for i := range indices {
		indices[i] = i
	}

	sort.SliceStable(indices, func(i, j int) bool {
		return engagements[indices[i]] > engagements[indices[j]]
	})

	if len(indices) > limit {
		indices = indices[:limit]
	}

	top := make([]models.TopPost, 0, len(indices))
	for _, idx := range indices {
		post := posts[idx]
		top = append(top, models.TopPost{
			ID:          post.ID,
			Content:     post.Content,
			PublishedAt: post.PublishedAt,
			Engagement:  post.Engagement,
			URL:         post.URL,
		})
	}
	return top
}
