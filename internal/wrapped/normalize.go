package wrapped

import (
	"encoding/json"

	"pacelane/api_wrapped/pkg/models"
)

// SnapshotKind tags the detected shape of a raw snapshot payload
type SnapshotKind int

const (
	// KindUnusable means the payload has neither a processed-summary
	// shape nor a posts list. The caller treats this as "no data".
	KindUnusable SnapshotKind = iota
	// KindAlreadyProcessed means the payload is a stored PostsWrappedData
	KindAlreadyProcessed
	// KindRawPosts means the payload carries a raw post collection
	KindRawPosts
)

// Snapshot is the tagged result of normalizing a raw payload
type Snapshot struct {
	Kind    SnapshotKind
	Summary *models.PostsWrappedData
	Posts   []models.PostRecord
}

// Normalize coerces an arbitrary payload into a tagged Snapshot. It never
// fails: malformed input yields KindUnusable, malformed individual records
// are dropped, malformed individual fields default to their zero values.
func Normalize(raw []byte) Snapshot {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Snapshot{Kind: KindUnusable}
	}

	_, hasTotalPosts := fields["totalPosts"]
	_, hasTotalEngagement := fields["totalEngagement"]
	if hasTotalPosts && hasTotalEngagement {
		var summary models.PostsWrappedData
		if err := json.Unmarshal(raw, &summary); err != nil {
			return Snapshot{Kind: KindUnusable}
		}
		return Snapshot{Kind: KindAlreadyProcessed, Summary: &summary}
	}

	rawPosts, ok := fields["posts"]
	if !ok {
		return Snapshot{Kind: KindUnusable}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(rawPosts, &entries); err != nil {
		return Snapshot{Kind: KindUnusable}
	}

	posts := make([]models.PostRecord, 0, len(entries))
	for _, entry := range entries {
		if record, ok := decodeRecord(entry); ok {
			posts = append(posts, record)
		}
	}

	return Snapshot{Kind: KindRawPosts, Posts: posts}
}

// decodeRecord coerces a single raw entry into a PostRecord with defensive
// defaults. Entries that are not JSON objects are dropped entirely.
func decodeRecord(raw json.RawMessage) (models.PostRecord, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.PostRecord{}, false
	}

	record := models.PostRecord{
		ID:          decodeString(fields["id"]),
		Content:     decodeString(fields["content"]),
		PublishedAt: decodeString(fields["publishedAt"]),
		URL:         decodeString(fields["url"]),
	}

	if rawEngagement, ok := fields["engagement"]; ok {
		// PostEngagement decodes defensively and never errors
		_ = json.Unmarshal(rawEngagement, &record.Engagement)
	}

	if rawAuthor, ok := fields["author"]; ok {
		var author models.PostAuthor
		if err := json.Unmarshal(rawAuthor, &author); err == nil && author.ProfileImage != "" {
			record.Author = &author
		}
	}

	return record, true
}

func decodeString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
