package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Count is an engagement counter that tolerates malformed input. JSON
// numbers are truncated to integers, numeric strings are parsed, anything
// else (null, objects, garbage) decodes to 0. Negative values clamp to 0
// so derived totals stay non-negative.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = 0

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n > 0 {
			*c = Count(n)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && parsed > 0 {
			*c = Count(parsed)
		}
	}

	return nil
}

// PostEngagement holds the per-post engagement counters. A value that is
// not a JSON object decodes to all zeroes instead of failing the record.
type PostEngagement struct {
	Likes    Count `json:"likes"`
	Comments Count `json:"comments"`
	Shares   Count `json:"shares"`
}

func (e *PostEngagement) UnmarshalJSON(data []byte) error {
	type plain PostEngagement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*e = PostEngagement{}
		return nil
	}
	*e = PostEngagement(p)
	return nil
}

// Total returns the engagement metric for a single post
func (e PostEngagement) Total() int {
	return int(e.Likes) + int(e.Comments) + int(e.Shares)
}

// PostAuthor carries the author's profile image reference when present
type PostAuthor struct {
	ProfileImage string `json:"profileImage"`
}

// PostRecord represents one raw social-media post entry before aggregation
type PostRecord struct {
	ID          string         `json:"id"`
	Content     string         `json:"content"`
	PublishedAt string         `json:"publishedAt"`
	Engagement  PostEngagement `json:"engagement"`
	URL         string         `json:"url"`
	Author      *PostAuthor    `json:"author,omitempty"`
}

// TopPost is a ranked post copied by value from its source record
type TopPost struct {
	ID          string         `json:"id"`
	Content     string         `json:"content"`
	PublishedAt string         `json:"publishedAt"`
	Engagement  PostEngagement `json:"engagement"`
	URL         string         `json:"url"`
}

// MonthBreakdown holds one month's activity in the year-in-review sequence
type MonthBreakdown struct {
	Month      string `json:"month"`
	Posts      int    `json:"posts"`
	Engagement int    `json:"engagement"`
}

// PostingFrequency summarizes posting cadence over the year
type PostingFrequency struct {
	PostsPerMonth    float64 `json:"postsPerMonth"`
	MostActiveMonth  string  `json:"mostActiveMonth,omitempty"`
	LeastActiveMonth string  `json:"leastActiveMonth,omitempty"`
}

// EngagementStats holds engagement totals and per-post averages
type EngagementStats struct {
	TotalLikes             int `json:"totalLikes"`
	TotalComments          int `json:"totalComments"`
	TotalShares            int `json:"totalShares"`
	AverageLikesPerPost    int `json:"averageLikesPerPost"`
	AverageCommentsPerPost int `json:"averageCommentsPerPost"`
	AverageSharesPerPost   int `json:"averageSharesPerPost"`
}

// ContentInsights holds derived content statistics
type ContentInsights struct {
	AveragePostLength int      `json:"averagePostLength"`
	MostUsedHashtags  []string `json:"mostUsedHashtags"`
	TopTopics         []string `json:"topTopics"`
}

// YearInReview holds the per-month activity breakdown for the target year
type YearInReview struct {
	Year             int              `json:"year"`
	MonthlyBreakdown []MonthBreakdown `json:"monthlyBreakdown"`
}

// PostsWrappedData is the composed year-in-review summary for one user-year
type PostsWrappedData struct {
	TotalPosts               int              `json:"totalPosts"`
	TotalEngagement          int              `json:"totalEngagement"`
	TotalWords               int              `json:"totalWords"`
	AverageEngagementPerPost int              `json:"averageEngagementPerPost"`
	TopPosts                 []TopPost        `json:"topPosts"`
	PostingFrequency         PostingFrequency `json:"postingFrequency"`
	EngagementStats          EngagementStats  `json:"engagementStats"`
	ContentInsights          ContentInsights  `json:"contentInsights"`
	YearInReview             YearInReview     `json:"yearInReview"`
	ProfileImage             string           `json:"profileImage,omitempty"`
	ReactionsData            any              `json:"reactionsData,omitempty"`
}
