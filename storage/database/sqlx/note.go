package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mkabeya/grove/core/note"
)

// noteRow is the persistence shape of a note. It is deliberately distinct from
// note.Note so schema changes cannot silently leak into the API contract.
type noteRow struct {
	ID         int       `db:"id"`
	UserID     string    `db:"user_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	IsFavorite bool      `db:"is_favorite"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r noteRow) toNote() note.Note {
	return note.Note{
		ID:         r.ID,
		UserID:     r.UserID,
		Title:      r.Title,
		Content:    r.Content,
		IsFavorite: r.IsFavorite,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type noteRepository struct {
	db *sqlx.DB
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *sqlx.DB) *noteRepository {
	return &noteRepository{db: db}
}

// trapNoRowsErr maps sql "no rows" err to note.ErrNotFound
func (repo noteRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return note.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo noteRepository) GetNotes(ctx context.Context, userID string) ([]note.Note, error) {
	var rows []noteRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, title, content, is_favorite, created_at, updated_at
		 FROM notes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting notes")
	}

	notes := make([]note.Note, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, r.toNote())
	}
	return notes, nil
}

func (repo noteRepository) GetNote(ctx context.Context, id int) (note.Note, error) {
	var r noteRow
	err := repo.db.GetContext(ctx, &r,
		`SELECT id, user_id, title, content, is_favorite, created_at, updated_at
		 FROM notes WHERE id = $1`, id)
	if err != nil {
		return note.Note{}, repo.trapNoRowsErr(err, "selecting note")
	}
	return r.toNote(), nil
}

func (repo noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	var r noteRow
	err := repo.db.GetContext(ctx, &r,
		`INSERT INTO notes (user_id, title, content, is_favorite, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, title, content, is_favorite, created_at, updated_at`,
		n.UserID, n.Title, n.Content, n.IsFavorite, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return r.toNote(), nil
}

func (repo noteRepository) UpdateNote(ctx context.Context, id int, up note.UpdateNote, updatedAt time.Time) (note.Note, error) {
	var r noteRow
	err := repo.db.GetContext(ctx, &r,
		`UPDATE notes SET
		   title = COALESCE($2, title),
		   content = COALESCE($3, content),
		   is_favorite = COALESCE($4, is_favorite),
		   updated_at = $5
		 WHERE id = $1
		 RETURNING id, user_id, title, content, is_favorite, created_at, updated_at`,
		id, up.Title, up.Content, up.IsFavorite, updatedAt)
	if err != nil {
		return note.Note{}, repo.trapNoRowsErr(err, "updating note")
	}
	return r.toNote(), nil
}

func (repo noteRepository) DeleteNote(ctx context.Context, id int) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return nil
}
