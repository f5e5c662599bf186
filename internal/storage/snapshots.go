package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pacelane/api_wrapped/pkg/database"
	"pacelane/api_wrapped/pkg/logging"
)

// ErrNotFound is returned when a user has no stored snapshot
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored posts payload for a user. Payload and Reactions
// are opaque blobs owned by the upstream app; this service never writes
// them, it only reads the latest row per user.
type Snapshot struct {
	UserID    string
	Payload   json.RawMessage
	Reactions json.RawMessage
	Locale    string
	UpdatedAt time.Time
}

// SnapshotStore reads raw post snapshots from PostgreSQL
type SnapshotStore struct {
	db     database.PostgresConn
	logger logging.Logger
}

// NewSnapshotStore creates a snapshot store over an existing connection
func NewSnapshotStore(db database.PostgresConn, logger logging.Logger) *SnapshotStore {
	return &SnapshotStore{db: db, logger: logger}
}

// Latest returns the most recent snapshot for a user
func (s *SnapshotStore) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	query := `
		SELECT user_id, payload,
		       COALESCE(reactions, 'null'::jsonb) as reactions,
		       COALESCE(locale, '') as locale,
		       updated_at
		FROM post_snapshots
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	var snapshot Snapshot
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&snapshot.UserID, &snapshot.Payload, &snapshot.Reactions,
		&snapshot.Locale, &snapshot.UpdatedAt)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	if string(snapshot.Reactions) == "null" {
		snapshot.Reactions = nil
	}

	return &snapshot, nil
}

// RecentlyUpdated returns the users whose snapshots changed since the
// given time, for the warm scheduler.
func (s *SnapshotStore) RecentlyUpdated(ctx context.Context, since time.Time, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM post_snapshots
		WHERE updated_at >= $1
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query recently updated snapshots: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			s.logger.WithError(err).Error("Failed to scan snapshot user id")
			continue
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recently updated snapshots: %w", err)
	}

	return users, nil
}
