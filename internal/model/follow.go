package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FollowStore persists directed follow edges between users. Both derived
// views (who a user follows, who follows a user) are lookups over the one
// edge table so the two directions cannot diverge.
type FollowStore interface {
	Create(ctx context.Context, followerID, followedID uuid.UUID) error
	Delete(ctx context.Context, followerID, followedID uuid.UUID) error
	Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]User, error)
	Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]User, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Follow is a directed edge recording that one user follows another.
type Follow struct {
	FollowerID uuid.UUID
	FollowedID uuid.UUID
	CreatedAt  time.Time
}

// FollowCounts is the counter pair rendered next to the follow button.
type FollowCounts struct {
	Following int64
	Followers int64
}
