package events

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

// Event is a community help event as stored. Every field except ID, Email,
// CreatedAt, and UpdatedAt is editable by its creator after the fact.
type Event struct {
	ID          string
	Title       string
	Description string
	EventType   string
	Thumbnail   string
	Location    string
	EventDate   time.Time
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateParams struct {
	Title       string    `validate:"required,max=200"`
	Description string    `validate:"max=10000"`
	EventType   string    `validate:"max=100"`
	Thumbnail   string    `validate:"omitempty,url,max=2048"`
	Location    string    `validate:"max=300"`
	EventDate   time.Time `validate:"required"`
	Email       string    `validate:"required,email"`
}

// UpdateParams holds a partial update. Nil pointers leave the stored value
// untouched; only non-nil fields reach the database.
type UpdateParams struct {
	Title       *string    `validate:"omitempty,max=200"`
	Description *string    `validate:"omitempty,max=10000"`
	EventType   *string    `validate:"omitempty,max=100"`
	Thumbnail   *string    `validate:"omitempty,url,max=2048"`
	Location    *string    `validate:"omitempty,max=300"`
	EventDate   *time.Time
}

// Filters narrows the public upcoming-events listing. Type is an exact
// category match (empty means no category filter; ParseFilters maps the
// "All" sentinel to empty). Search is a case-insensitive title substring.
// NotBefore cuts off events dated earlier than the given instant.
type Filters struct {
	Type      string
	Search    string
	NotBefore time.Time
}

type Repository interface {
	ListUpcoming(ctx context.Context, filters Filters) ([]Event, error)
	ListByCreator(ctx context.Context, email string) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, params CreateParams) (string, error)
	Update(ctx context.Context, id string, params UpdateParams) error
	Delete(ctx context.Context, id string) error
}
