package wrapped

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"pacelane/api_wrapped/pkg/logging"
	"pacelane/api_wrapped/pkg/models"
)

const (
	topPostsLimit    = 10
	topHashtagsLimit = 8
)

// BuildOptions configures one aggregation run. Locale and Location are
// explicit so behavior stays deterministic across environments.
type BuildOptions struct {
	Year     int
	Location *time.Location
	Locale   string

	// Reactions is an independently-sourced blob (decoded value, JSON
	// bytes, or a JSON-encoded string). It is merged onto the summary
	// verbatim; parse failures are logged and ignored.
	Reactions any

	Logger logging.Logger
}

// Build runs the full pipeline over a raw snapshot payload and composes
// one PostsWrappedData value. ok is false when the payload is unusable;
// an empty year-filtered set still yields a well-formed all-zero summary.
func Build(raw []byte, opts BuildOptions) (summary *models.PostsWrappedData, ok bool) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}

	snapshot := Normalize(raw)
	switch snapshot.Kind {
	case KindAlreadyProcessed:
		summary = snapshot.Summary
		ensureSlices(summary)
		mergeReactions(summary, opts.Reactions, opts.Logger)
		return summary, true
	case KindRawPosts:
		summary = compose(snapshot.Posts, opts)
		mergeReactions(summary, opts.Reactions, opts.Logger)
		return summary, true
	default:
		return nil, false
	}
}

func compose(records []models.PostRecord, opts BuildOptions) *models.PostsWrappedData {
	filtered := FilterYear(records, opts.Year, opts.Location)
	acc := Aggregate(filtered)
	breakdown, mostActive, leastActive := BuildMonthly(filtered, acc.Engagements, opts.Locale)

	totalEngagement := acc.TotalEngagement()
	summary := &models.PostsWrappedData{
		TotalPosts:               acc.Posts,
		TotalEngagement:          totalEngagement,
		TotalWords:               acc.Words,
		AverageEngagementPerPost: roundDiv(totalEngagement, acc.Posts),
		TopPosts:                 RankTopPosts(filtered, acc.Engagements, topPostsLimit),
		PostingFrequency: models.PostingFrequency{
			// Fixed divisor of 12 regardless of active months; observed
			// upstream behavior, kept until product says otherwise.
			PostsPerMonth:    roundOneDecimal(float64(acc.Posts) / 12),
			MostActiveMonth:  mostActive,
			LeastActiveMonth: leastActive,
		},
		EngagementStats: models.EngagementStats{
			TotalLikes:             acc.Likes,
			TotalComments:          acc.Comments,
			TotalShares:            acc.Shares,
			AverageLikesPerPost:    roundDiv(acc.Likes, acc.Posts),
			AverageCommentsPerPost: roundDiv(acc.Comments, acc.Posts),
			AverageSharesPerPost:   roundDiv(acc.Shares, acc.Posts),
		},
		ContentInsights: models.ContentInsights{
			AveragePostLength: roundDiv(acc.Chars, acc.Posts),
			MostUsedHashtags:  acc.TopHashtags(topHashtagsLimit),
			TopTopics:         []string{},
		},
		YearInReview: models.YearInReview{
			Year:             opts.Year,
			MonthlyBreakdown: breakdown,
		},
	}

	// Profile image comes from the first record of the original
	// unfiltered collection, not the year-filtered one
	if len(records) > 0 && records[0].Author != nil {
		summary.ProfileImage = records[0].Author.ProfileImage
	}

	return summary
}

// mergeReactions attaches an independently-sourced reactions blob to the
// summary. The blob may arrive already decoded, as raw JSON bytes, or as
// a JSON-encoded string; it is passed through without inspection. A parse
// failure drops the field, it never propagates.
func mergeReactions(summary *models.PostsWrappedData, reactions any, logger logging.Logger) {
	if reactions == nil {
		return
	}

	warn := func(err error) {
		if logger != nil {
			logger.WithError(err).Warn("Failed to parse reactions payload, skipping merge")
		}
	}

	switch v := reactions.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return
		}
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			warn(err)
			return
		}
		summary.ReactionsData = decoded
	case []byte:
		mergeRawReactions(summary, v, warn)
	case json.RawMessage:
		mergeRawReactions(summary, v, warn)
	default:
		summary.ReactionsData = v
	}
}

func mergeRawReactions(summary *models.PostsWrappedData, raw []byte, warn func(error)) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		warn(err)
		return
	}
	// A jsonb column may hold a doubly-encoded JSON string
	if s, ok := decoded.(string); ok {
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			warn(err)
			return
		}
		decoded = inner
	}
	summary.ReactionsData = decoded
}

// ensureSlices keeps already-processed summaries marshaling as [] not null
func ensureSlices(summary *models.PostsWrappedData) {
	if summary.TopPosts == nil {
		summary.TopPosts = []models.TopPost{}
	}
	if summary.ContentInsights.MostUsedHashtags == nil {
		summary.ContentInsights.MostUsedHashtags = []string{}
	}
	if summary.ContentInsights.TopTopics == nil {
		summary.ContentInsights.TopTopics = []string{}
	}
	if summary.YearInReview.MonthlyBreakdown == nil {
		summary.YearInReview.MonthlyBreakdown = []models.MonthBreakdown{}
	}
}

// roundDiv returns round(sum/count), and 0 when count is 0
func roundDiv(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
