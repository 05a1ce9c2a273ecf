package note

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("note not found")

type (
	Repository interface {
		// GetNotes returns all notes owned by userID, most recently created first.
		GetNotes(ctx context.Context, userID string) ([]Note, error)
		GetNote(ctx context.Context, id int) (Note, error)
		CreateNote(ctx context.Context, n Note) (Note, error)
		UpdateNote(ctx context.Context, id int, up UpdateNote, updatedAt time.Time) (Note, error)
		DeleteNote(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Note, error) {
	return svc.repo.GetNotes(ctx, userID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Note, error) {
	return svc.repo.GetNote(ctx, id)
}

func (svc *Service) Create(ctx context.Context, userID string, nn NewNote) (Note, error) {
	now := time.Now().UTC()
	n := Note{
		UserID:     userID,
		Title:      nn.Title,
		Content:    nn.Content,
		IsFavorite: nn.IsFavorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateNote(ctx, n)
}

func (svc *Service) Update(ctx context.Context, id int, un UpdateNote) (Note, error) {
	return svc.repo.UpdateNote(ctx, id, un, time.Now().UTC())
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteNote(ctx, id)
}
