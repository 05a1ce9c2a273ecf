package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkabeya/grove/core/stats"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func statsColumns() []string {
	return []string{"id", "user_id", "level", "experience", "total_study_minutes", "current_streak", "last_study_date", "tree_stage"}
}

func TestStatsRepository_EnsureStats_existingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepository(db)

	last := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, user_id, .* FROM user_stats WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(statsColumns()).
			AddRow(7, "user-1", 3, 40, 750, 2, last, stats.StageSapling))

	got, err := repo.EnsureStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, stats.Stats{
		ID: 7, UserID: "user-1", Level: 3, Experience: 40,
		TotalStudyMinutes: 750, CurrentStreak: 2, LastStudyDate: last,
		TreeStage: stats.StageSapling,
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_EnsureStats_createsMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(`SELECT id, user_id, .* FROM user_stats WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(statsColumns()))
	mock.ExpectQuery(`INSERT INTO user_stats \(user_id\) VALUES \(\$1\)`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(statsColumns()).
			AddRow(1, "user-1", 1, 0, 0, 0, nil, stats.StageSapling))

	got, err := repo.EnsureStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 0, got.Experience)
	assert.Equal(t, stats.StageSapling, got.TreeStage)
	assert.True(t, got.LastStudyDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_UpdateStats_leavesStreakAlone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepository(db)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, user_id, .* FROM user_stats WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(statsColumns()).
			AddRow(1, "user-1", 1, 90, 200, 5, now.Add(-24*time.Hour), stats.StageSapling))
	mock.ExpectQuery(`UPDATE user_stats SET`).
		WithArgs("user-1", 2, 0, 225, stats.StageSapling, now).
		WillReturnRows(sqlmock.NewRows(statsColumns()).
			AddRow(1, "user-1", 2, 0, 225, 5, now, stats.StageSapling))

	got, err := repo.UpdateStats(context.Background(), "user-1", stats.Stats{
		Level: 2, Experience: 0, TotalStudyMinutes: 225,
		TreeStage: stats.StageSapling, LastStudyDate: now,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentStreak)
	assert.NoError(t, mock.ExpectationsWereMet())
}
