package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MicropostContentMaxLen bounds micropost content length in characters.
const MicropostContentMaxLen = 140

// MicropostStore defines persistence operations for microposts.
type MicropostStore interface {
	Create(ctx context.Context, post Micropost) (Micropost, error)
	GetByID(ctx context.Context, id uuid.UUID) (Micropost, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Micropost, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ListFeed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Micropost, error)
	CountFeed(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Micropost is a short text post owned by exactly one user.
type Micropost struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// AuthorName is populated by feed/listing queries for display.
	AuthorName string
}
