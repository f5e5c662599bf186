package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacelane/api_wrapped/pkg/logging"
)

func setupStore(t *testing.T) (*SnapshotStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSnapshotStore(db, logging.NewLogger()), mock
}

func TestLatestReturnsSnapshot(t *testing.T) {
	store, mock := setupStore(t)

	updatedAt := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "payload", "reactions", "locale", "updated_at"}).
		AddRow("user-1", []byte(`{"posts": []}`), []byte(`{"total": 3}`), "pt-BR", updatedAt)
	mock.ExpectQuery("SELECT user_id, payload").
		WithArgs("user-1").
		WillReturnRows(rows)

	snapshot, err := store.Latest(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", snapshot.UserID)
	assert.JSONEq(t, `{"posts": []}`, string(snapshot.Payload))
	assert.JSONEq(t, `{"total": 3}`, string(snapshot.Reactions))
	assert.Equal(t, "pt-BR", snapshot.Locale)
	assert.Equal(t, updatedAt, snapshot.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestNullReactionsBecomeNil(t *testing.T) {
	store, mock := setupStore(t)

	rows := sqlmock.NewRows([]string{"user_id", "payload", "reactions", "locale", "updated_at"}).
		AddRow("user-1", []byte(`{"posts": []}`), []byte(`null`), "", time.Now())
	mock.ExpectQuery("SELECT user_id, payload").
		WithArgs("user-1").
		WillReturnRows(rows)

	snapshot, err := store.Latest(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Nil(t, snapshot.Reactions)
	assert.Equal(t, "", snapshot.Locale)
}

func TestLatestNotFound(t *testing.T) {
	store, mock := setupStore(t)

	mock.ExpectQuery("SELECT user_id, payload").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "payload", "reactions", "locale", "updated_at"}))

	_, err := store.Latest(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentlyUpdated(t *testing.T) {
	store, mock := setupStore(t)

	since := time.Now().Add(-24 * time.Hour)
	rows := sqlmock.NewRows([]string{"user_id"}).AddRow("u1").AddRow("u2")
	mock.ExpectQuery("SELECT DISTINCT user_id").
		WithArgs(since, 100).
		WillReturnRows(rows)

	users, err := store.RecentlyUpdated(context.Background(), since, 100)

	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}
