package note

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mkabeya/grove/core"
)

// Note is a free-form text note owned by a single user. The owner is set at
// creation from the authenticated subject and never changes afterwards.
type Note struct {
	ID         int       `json:"id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"` // UTC
	UpdatedAt  time.Time `json:"updatedAt"` // UTC
}

// NewNote contains information needed to create a new Note.
type NewNote struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	IsFavorite bool   `json:"isFavorite"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	return validate.Struct(nn)
}

// UpdateNote contains the fields of a Note that may be changed after creation.
// Nil fields are left untouched.
type UpdateNote struct {
	Title      *string `json:"title" validate:"omitempty,min=1"`
	Content    *string `json:"content"`
	IsFavorite *bool   `json:"isFavorite"`
}

func (un *UpdateNote) Validate(validate *validator.Validate) error {
	if un.Title != nil {
		title := core.CleanString(*un.Title)
		un.Title = &title
	}
	return validate.Struct(un)
}
