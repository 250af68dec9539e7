package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/model"
)

var _ model.FollowStore = (*FollowRepository)(nil)

// FollowRepository persists the directed follow edge table. Both derived
// listings read the same table from opposite ends.
type FollowRepository struct {
	db *Connection
}

func NewFollowRepository(db *Connection) *FollowRepository {
	return &FollowRepository{
		db: db,
	}
}

// Create inserts the edge if absent. Re-following is a no-op.
func (r *FollowRepository) Create(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `INSERT INTO follows (follower_id, followed_id)
			  VALUES ($1, $2)
			  ON CONFLICT (follower_id, followed_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, followerID, followedID); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// Delete removes the edge if present. Unfollowing twice is a no-op.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`

	if _, err := r.db.Exec(ctx, query, followerID, followedID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, followerID, followedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return exists, nil
}

// Following lists the users userID follows, most recently followed first.
func (r *FollowRepository) Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.admin, u.avatar_key, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.queryUsers(ctx, query, userID, limit, offset)
}

// Followers lists the users following userID, most recent edge first.
func (r *FollowRepository) Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.admin, u.avatar_key, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.queryUsers(ctx, query, userID, limit, offset)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (r *FollowRepository) queryUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow edges: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
