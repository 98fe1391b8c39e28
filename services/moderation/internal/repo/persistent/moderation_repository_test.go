package persistent

import (
	"context"
	"regexp"
	"testing"
	"time"

	"horeca-board/services/moderation/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestModerationRepository_Counts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewModerationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "profiles" WHERE "profiles"."deleted_at" IS NULL`)).WillReturnRows(countRows(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "jobs" WHERE "jobs"."deleted_at" IS NULL`)).WillReturnRows(countRows(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "applications"`)).WillReturnRows(countRows(30))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "jobs" WHERE status = $1 AND "jobs"."deleted_at" IS NULL`)).
		WithArgs(entity.StatusPending).WillReturnRows(countRows(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "banners" WHERE status = $1`)).
		WithArgs(entity.StatusPending).WillReturnRows(countRows(1))

	d, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Dashboard{Profiles: 12, Jobs: 7, Applications: 30, PendingJobs: 2, PendingBanners: 1}, d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModerationRepository_PendingBanners(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewModerationRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banners" WHERE status = $1 ORDER BY created_at ASC LIMIT $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "image_url", "status", "created_at"}).
			AddRow("b1", "u1", "Happy hour", "Two for one", "https://cdn/banners/b1.png", "pending", now))

	items, err := repo.PendingBanners(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entity.KindBanner, items[0].Kind)
	assert.Equal(t, "u1", items[0].SubmitterID)
	assert.Equal(t, "https://cdn/banners/b1.png", items[0].ImageURL)
}

func TestModerationRepository_PendingJobs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewModerationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "jobs" WHERE status = $1 AND "jobs"."deleted_at" IS NULL ORDER BY created_at ASC LIMIT $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employer_id", "title", "company", "location", "status", "created_at"}).
			AddRow("j1", "e1", "Barista", "Cafe Nord", "", "pending", time.Now()))

	items, err := repo.PendingJobs(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cafe Nord", items[0].Summary)
	assert.Equal(t, "e1", items[0].SubmitterID)
}

func TestModerationRepository_Submitters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewModerationRepository(db)

	empty, err := repo.Submitters(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE id IN ($1,$2) AND "profiles"."deleted_at" IS NULL`)).
		WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "name"}).
			AddRow("u1", "chef@example.com", "employer", "Chef"))

	got, err := repo.Submitters(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	require.Contains(t, got, "u1")
	assert.Equal(t, "chef@example.com", got["u1"].Email)
	assert.NotContains(t, got, "u2")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "абв…", truncate("абвгд", 3))
}
