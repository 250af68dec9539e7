package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/pagination"
	"github.com/dtroode/microblog-server/internal/policy"
)

// Micropost implements posting, deletion and feed assembly.
type Micropost struct {
	micropostStore model.MicropostStore
	userStore      model.UserStore
	logger         *logger.Logger
}

func NewMicropost(
	micropostStore model.MicropostStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Micropost {
	return &Micropost{
		micropostStore: micropostStore,
		userStore:      userStore,
		logger:         logger,
	}
}

// Create validates and persists a post owned by userID.
func (s *Micropost) Create(ctx context.Context, userID uuid.UUID, content string) (model.Micropost, error) {
	content = strings.TrimSpace(content)

	ve := model.NewValidationError()
	if content == "" {
		ve.Add("content", "Content can't be blank")
	} else if utf8.RuneCountInString(content) > model.MicropostContentMaxLen {
		ve.Add("content", fmt.Sprintf("Content is too long (maximum is %d characters)", model.MicropostContentMaxLen))
	}
	if ve.HasErrors() {
		return model.Micropost{}, ve
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return model.Micropost{}, err
	}

	post, err := s.micropostStore.Create(ctx, model.Micropost{
		ID:      uuid.New(),
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		return model.Micropost{}, fmt.Errorf("failed to create micropost: %w", err)
	}

	s.logger.Info("Micropost service: post created",
		"post_id", post.ID,
		"user_id", userID)

	return post, nil
}

// Delete removes a post. Only the owner may delete it; the remaining
// count for the owner is returned for the "N microposts" display.
func (s *Micropost) Delete(ctx context.Context, actorID, postID uuid.UUID) (int64, error) {
	actor, err := s.userStore.GetByID(ctx, actorID)
	if err != nil {
		return 0, err
	}
	post, err := s.micropostStore.GetByID(ctx, postID)
	if err != nil {
		return 0, err
	}

	if !policy.CanDeleteMicropost(actor, post) {
		return 0, model.ErrForbidden
	}

	if err := s.micropostStore.Delete(ctx, postID); err != nil {
		return 0, fmt.Errorf("failed to delete micropost: %w", err)
	}

	s.logger.Info("Micropost service: post deleted",
		"post_id", postID,
		"user_id", actorID)

	return s.micropostStore.CountByUser(ctx, post.UserID)
}

// Feed returns one page of posts from the user and everyone they follow,
// newest first.
func (s *Micropost) Feed(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.Micropost], error) {
	page, perPage = pagination.Normalize(page, perPage)

	total, err := s.micropostStore.CountFeed(ctx, userID)
	if err != nil {
		return pagination.Page[model.Micropost]{}, fmt.Errorf("failed to count feed: %w", err)
	}
	posts, err := s.micropostStore.ListFeed(ctx, userID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return pagination.Page[model.Micropost]{}, fmt.Errorf("failed to list feed: %w", err)
	}

	return pagination.FromOffset(posts, total, page, perPage), nil
}

// ByUser returns one page of a single user's posts for the profile view.
func (s *Micropost) ByUser(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.Micropost], error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return pagination.Page[model.Micropost]{}, err
	}

	page, perPage = pagination.Normalize(page, perPage)

	total, err := s.micropostStore.CountByUser(ctx, userID)
	if err != nil {
		return pagination.Page[model.Micropost]{}, fmt.Errorf("failed to count microposts: %w", err)
	}
	posts, err := s.micropostStore.ListByUser(ctx, userID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return pagination.Page[model.Micropost]{}, fmt.Errorf("failed to list microposts: %w", err)
	}

	return pagination.FromOffset(posts, total, page, perPage), nil
}

// Count returns how many posts a user has.
func (s *Micropost) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.micropostStore.CountByUser(ctx, userID)
}
