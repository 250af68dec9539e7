package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/microblog-server/internal/model"
)

var _ model.MicropostStore = (*MicropostRepository)(nil)

type MicropostRepository struct {
	db *Connection
}

func NewMicropostRepository(db *Connection) *MicropostRepository {
	return &MicropostRepository{
		db: db,
	}
}

func (r *MicropostRepository) Create(ctx context.Context, post model.Micropost) (model.Micropost, error) {
	query := `INSERT INTO microposts (id, user_id, content)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_id, content, created_at, updated_at`

	var saved model.Micropost
	err := r.db.QueryRow(ctx, query, post.ID, post.UserID, post.Content).Scan(
		&saved.ID, &saved.UserID, &saved.Content, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Micropost{}, fmt.Errorf("failed to create micropost: %w", err)
	}

	return saved, nil
}

func (r *MicropostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Micropost, error) {
	query := `SELECT id, user_id, content, created_at, updated_at
			  FROM microposts WHERE id = $1`

	var post model.Micropost
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Content, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Micropost{}, model.ErrNotFound
		}
		return model.Micropost{}, fmt.Errorf("failed to get micropost by id: %w", err)
	}

	return post, nil
}

func (r *MicropostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM microposts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete micropost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListByUser returns a user's own posts, newest first. The id tiebreak
// keeps the order stable for posts created in the same instant.
func (r *MicropostRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Micropost, error) {
	query := `
		SELECT m.id, m.user_id, m.content, m.created_at, m.updated_at, u.name
		FROM microposts m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2 OFFSET $3`

	return r.queryPosts(ctx, query, userID, limit, offset)
}

func (r *MicropostRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM microposts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count microposts: %w", err)
	}
	return count, nil
}

// ListFeed returns posts by the user and everyone they follow, newest
// first. Each call re-queries the current edge set; nothing is cached.
func (r *MicropostRepository) ListFeed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Micropost, error) {
	query := `
		SELECT m.id, m.user_id, m.content, m.created_at, m.updated_at, u.name
		FROM microposts m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = $1
		   OR m.user_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2 OFFSET $3`

	return r.queryPosts(ctx, query, userID, limit, offset)
}

func (r *MicropostRepository) CountFeed(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM microposts
		WHERE user_id = $1
		   OR user_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count feed: %w", err)
	}
	return count, nil
}

func (r *MicropostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]model.Micropost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list microposts: %w", err)
	}
	defer rows.Close()

	var posts []model.Micropost
	for rows.Next() {
		var post model.Micropost
		err := rows.Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt, &post.UpdatedAt, &post.AuthorName)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
