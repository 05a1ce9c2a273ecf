package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/mkabeya/grove/core/note"
)

type noteRepository struct {
	tbl *noteTable
}

var _ note.Repository = (*noteRepository)(nil)

func NewNoteRepository(db *DB) *noteRepository {
	return &noteRepository{tbl: db.note}
}

func (r *noteRepository) GetNotes(ctx context.Context, userID string) ([]note.Note, error) {
	r.tbl.mutex.RLock()
	defer r.tbl.mutex.RUnlock()

	res := make([]note.Note, 0)
	for _, n := range r.tbl.t {
		if n.UserID == userID {
			res = append(res, *n)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *noteRepository) GetNote(ctx context.Context, id int) (note.Note, error) {
	r.tbl.mutex.RLock()
	defer r.tbl.mutex.RUnlock()

	if n, ok := r.tbl.t[id]; ok {
		return *n, nil
	}
	return note.Note{}, note.ErrNotFound
}

func (r *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	r.tbl.pkCount++
	n.ID = r.tbl.pkCount
	r.tbl.t[n.ID] = &n
	return n, nil
}

func (r *noteRepository) UpdateNote(ctx context.Context, id int, up note.UpdateNote, updatedAt time.Time) (note.Note, error) {
	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	n, ok := r.tbl.t[id]
	if !ok {
		return note.Note{}, note.ErrNotFound
	}
	if up.Title != nil {
		n.Title = *up.Title
	}
	if up.Content != nil {
		n.Content = *up.Content
	}
	if up.IsFavorite != nil {
		n.IsFavorite = *up.IsFavorite
	}
	n.UpdatedAt = updatedAt
	return *n, nil
}

func (r *noteRepository) DeleteNote(ctx context.Context, id int) error {
	r.tbl.mutex.Lock()
	defer r.tbl.mutex.Unlock()

	delete(r.tbl.t, id)
	return nil
}
