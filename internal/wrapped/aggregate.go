package wrapped

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// hashtagPattern matches a '#' followed by one or more word characters
var hashtagPattern = regexp.MustCompile(`#\w+`)

// minWordLength is the token length at or below which a whitespace-split
// token is not counted as a word
const minWordLength = 3

// Accumulator is the immutable snapshot produced by a single aggregation
// pass over the year-filtered records.
type Accumulator struct {
	Posts    int
	Likes    int
	Comments int
	Shares   int
	Chars    int
	Words    int

	// Engagements holds the per-record engagement metric, parallel to
	// the filtered input order. The ranker consumes it.
	Engagements []int

	// HashtagCounts maps hashtag token to occurrence count; HashtagOrder
	// preserves first-encountered order for deterministic tie-breaks.
	HashtagCounts map[string]int
	HashtagOrder  []string
}

// Aggregate folds the filtered records into an Accumulator in one pass.
// Records with malformed engagement data contribute 0 to the counters
// rather than aborting the pass (the decode layer already guarantees
// zeroed counters for those).
func Aggregate(posts []FilteredPost) Accumulator {
	acc := Accumulator{
		Posts:         len(posts),
		Engagements:   make([]int, 0, len(posts)),
		HashtagCounts: make(map[string]int),
	}

	for _, post := range posts {
		acc.Likes += int(post.Engagement.Likes)
		acc.Comments += int(post.Engagement.Comments)
		acc.Shares += int(post.Engagement.Shares)
		acc.Engagements = append(acc.Engagements, post.Engagement.Total())

		acc.Chars += utf8.RuneCountInString(post.Content)
		for _, token := range strings.Fields(post.Content) {
			// Tokens of three characters or fewer (articles, bare
			// hashtags like "#ai") do not count as words
			if utf8.RuneCountInString(token) > minWordLength {
				acc.Words++
			}
		}

		// Every match counts, including duplicates within the same post
		for _, tag := range hashtagPattern.FindAllString(post.Content, -1) {
			if _, seen := acc.HashtagCounts[tag]; !seen {
				acc.HashtagOrder = append(acc.HashtagOrder, tag)
			}
			acc.HashtagCounts[tag]++
		}
	}

	return acc
}

// TotalEngagement returns likes + comments + shares across the pass
func (a Accumulator) TotalEngagement() int {
	return a.Likes + a.Comments + a.Shares
}

// TopHashtags returns up to limit distinct hashtags ordered by descending
// occurrence count, ties broken by first-encountered order.
func (a Accumulator) TopHashtags(limit int) []string {
	tags := make([]string, len(a.HashtagOrder))
	copy(tags, a.HashtagOrder)

	sort.SliceStable(tags, func(i, j int) bool {
		return a.HashtagCounts[tags[i]] > a.HashtagCounts[tags[j]]
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
