package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/pagination"
)

// Follow implements the directed follow relationship between users.
type Follow struct {
	followStore model.FollowStore
	userStore   model.UserStore
	logger      *logger.Logger
}

func NewFollow(
	followStore model.FollowStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Follow {
	return &Follow{
		followStore: followStore,
		userStore:   userStore,
		logger:      logger,
	}
}

// Follow creates the edge follower → followed and returns the followed
// user's fresh counters for display. Following someone twice is a no-op.
// Self-follow is refused: it would put the same user on both sides of the
// edge and skew both counters.
func (s *Follow) Follow(ctx context.Context, followerID, followedID uuid.UUID) (model.FollowCounts, error) {
	if followerID == followedID {
		ve := model.NewValidationError()
		ve.Add("followed", "You cannot follow yourself")
		return model.FollowCounts{}, ve
	}

	if _, err := s.userStore.GetByID(ctx, followedID); err != nil {
		return model.FollowCounts{}, err
	}

	if err := s.followStore.Create(ctx, followerID, followedID); err != nil {
		return model.FollowCounts{}, fmt.Errorf("failed to follow: %w", err)
	}

	s.logger.Info("Follow service: followed",
		"follower_id", followerID,
		"followed_id", followedID)

	return s.Counts(ctx, followedID)
}

// Unfollow removes the edge if present and returns fresh counters.
// Unfollowing someone you don't follow is a no-op.
func (s *Follow) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (model.FollowCounts, error) {
	if _, err := s.userStore.GetByID(ctx, followedID); err != nil {
		return model.FollowCounts{}, err
	}

	if err := s.followStore.Delete(ctx, followerID, followedID); err != nil {
		return model.FollowCounts{}, fmt.Errorf("failed to unfollow: %w", err)
	}

	s.logger.Info("Follow service: unfollowed",
		"follower_id", followerID,
		"followed_id", followedID)

	return s.Counts(ctx, followedID)
}

// IsFollowing reports whether follower follows followed; it drives the
// Follow/Unfollow button label.
func (s *Follow) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	return s.followStore.Exists(ctx, followerID, followedID)
}

// Counts returns the follower/following counters for a user.
func (s *Follow) Counts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error) {
	followers, err := s.followStore.CountFollowers(ctx, userID)
	if err != nil {
		return model.FollowCounts{}, fmt.Errorf("failed to count followers: %w", err)
	}
	following, err := s.followStore.CountFollowing(ctx, userID)
	if err != nil {
		return model.FollowCounts{}, fmt.Errorf("failed to count following: %w", err)
	}
	return model.FollowCounts{Following: following, Followers: followers}, nil
}

// Following returns one page of the users userID follows, most recently
// followed first. Every call re-reads the current edge set.
func (s *Follow) Following(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.User], error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return pagination.Page[model.User]{}, err
	}

	page, perPage = pagination.Normalize(page, perPage)

	total, err := s.followStore.CountFollowing(ctx, userID)
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to count following: %w", err)
	}
	users, err := s.followStore.Following(ctx, userID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to list following: %w", err)
	}

	return pagination.FromOffset(users, total, page, perPage), nil
}

// Followers returns one page of the users following userID.
func (s *Follow) Followers(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.User], error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return pagination.Page[model.User]{}, err
	}

	page, perPage = pagination.Normalize(page, perPage)

	total, err := s.followStore.CountFollowers(ctx, userID)
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to count followers: %w", err)
	}
	users, err := s.followStore.Followers(ctx, userID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to list followers: %w", err)
	}

	return pagination.FromOffset(users, total, page, perPage), nil
}
