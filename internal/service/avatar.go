package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/policy"
)

// Avatar stores and serves profile images through the object store.
type Avatar struct {
	userStore model.UserStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewAvatar(userStore model.UserStore, storage model.Storage, logger *logger.Logger) *Avatar {
	return &Avatar{
		userStore: userStore,
		storage:   storage,
		logger:    logger,
	}
}

// Upload replaces target's avatar. Only the user themself may change it.
func (s *Avatar) Upload(ctx context.Context, actorID, targetID uuid.UUID, reader io.Reader, size int64, contentType string) (model.User, error) {
	actor, err := s.userStore.GetByID(ctx, actorID)
	if err != nil {
		return model.User{}, err
	}
	target, err := s.userStore.GetByID(ctx, targetID)
	if err != nil {
		return model.User{}, err
	}

	if !policy.CanUpdateUser(actor, target) {
		return model.User{}, model.ErrForbidden
	}

	key := fmt.Sprintf("avatars/%s", targetID)
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	target.AvatarKey = key
	savedUser, err := s.userStore.Update(ctx, target)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to save avatar key: %w", err)
	}

	s.logger.Info("Avatar service: avatar updated", "user_id", targetID)

	return savedUser, nil
}

// Download streams a user's avatar. Users without an uploaded avatar get
// ErrNotFound; the UI falls back to the Gravatar URL.
func (s *Avatar) Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AvatarKey == "" {
		return nil, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, user.AvatarKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	return reader, nil
}
