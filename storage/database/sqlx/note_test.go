package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkabeya/grove/core/note"
)

func noteColumns() []string {
	return []string{"id", "user_id", "title", "content", "is_favorite", "created_at", "updated_at"}
}

func TestNoteRepository_GetNote_notFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNoteRepository(db)

	mock.ExpectQuery(`SELECT id, user_id, .* FROM notes WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(noteColumns()))

	_, err := repo.GetNote(context.Background(), 42)
	assert.Equal(t, note.ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_UpdateNote_partial(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNoteRepository(db)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	title := "Geometry"

	// nil fields go through as NULL and COALESCE keeps the stored values
	mock.ExpectQuery(`UPDATE notes SET`).
		WithArgs(1, title, nil, nil, updated).
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow(1, "user-1", title, "a^2 + b^2 = c^2", false, created, updated))

	got, err := repo.UpdateNote(context.Background(), 1, note.UpdateNote{Title: &title}, updated)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, "a^2 + b^2 = c^2", got.Content)
	assert.Equal(t, updated, got.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_UpdateNote_notFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNoteRepository(db)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE notes SET`).
		WillReturnRows(sqlmock.NewRows(noteColumns()))

	_, err := repo.UpdateNote(context.Background(), 42, note.UpdateNote{}, now)
	assert.Equal(t, note.ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
