package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/microblog-server/internal/mocks"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/testutil"
)

func newFollowService(t *testing.T) (*Follow, *mocks.FollowStore, *mocks.UserStore) {
	t.Helper()
	followStore := &mocks.FollowStore{}
	userStore := &mocks.UserStore{}
	return NewFollow(followStore, userStore, testutil.MakeNoopLogger()), followStore, userStore
}

func TestFollow_Follow(t *testing.T) {
	ctx := context.Background()
	svc, followStore, userStore := newFollowService(t)

	follower := uuid.New()
	followed := uuid.New()
	userStore.On("GetByID", mock.Anything, followed).Return(model.User{ID: followed}, nil)
	followStore.On("Create", mock.Anything, follower, followed).Return(nil)
	followStore.On("CountFollowers", mock.Anything, followed).Return(int64(1), nil)
	followStore.On("CountFollowing", mock.Anything, followed).Return(int64(5), nil)

	counts, err := svc.Follow(ctx, follower, followed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Followers)
	assert.Equal(t, int64(5), counts.Following)
}

func TestFollow_Follow_Self(t *testing.T) {
	ctx := context.Background()
	svc, followStore, _ := newFollowService(t)

	id := uuid.New()
	_, err := svc.Follow(ctx, id, id)
	require.Error(t, err)

	ve, ok := model.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields["followed"], "You cannot follow yourself")
	followStore.AssertNotCalled(t, "Create")
}

func TestFollow_Follow_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, followStore, userStore := newFollowService(t)

	followed := uuid.New()
	userStore.On("GetByID", mock.Anything, followed).Return(model.User{}, model.ErrNotFound)

	_, err := svc.Follow(ctx, uuid.New(), followed)
	assert.ErrorIs(t, err, model.ErrNotFound)
	followStore.AssertNotCalled(t, "Create")
}

func TestFollow_Unfollow(t *testing.T) {
	ctx := context.Background()
	svc, followStore, userStore := newFollowService(t)

	follower := uuid.New()
	followed := uuid.New()
	userStore.On("GetByID", mock.Anything, followed).Return(model.User{ID: followed}, nil)
	followStore.On("Delete", mock.Anything, follower, followed).Return(nil)
	followStore.On("CountFollowers", mock.Anything, followed).Return(int64(0), nil)
	followStore.On("CountFollowing", mock.Anything, followed).Return(int64(5), nil)

	counts, err := svc.Unfollow(ctx, follower, followed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Followers)
}

func TestFollow_IsFollowing(t *testing.T) {
	ctx := context.Background()
	svc, followStore, _ := newFollowService(t)

	follower := uuid.New()
	followed := uuid.New()
	followStore.On("Exists", mock.Anything, follower, followed).Return(true, nil)
	followStore.On("Exists", mock.Anything, followed, follower).Return(false, nil)

	got, err := svc.IsFollowing(ctx, follower, followed)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.IsFollowing(ctx, followed, follower)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestFollow_Following_Paginates(t *testing.T) {
	ctx := context.Background()
	svc, followStore, userStore := newFollowService(t)

	userID := uuid.New()
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
	followStore.On("CountFollowing", mock.Anything, userID).Return(int64(31), nil)
	followStore.On("Following", mock.Anything, userID, 30, 0).Return(make([]model.User, 30), nil)

	page, err := svc.Following(ctx, userID, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.Len(t, page.Items, 30)
}

func TestFollow_Followers_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _, userStore := newFollowService(t)

	userID := uuid.New()
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	_, err := svc.Followers(ctx, userID, 1, 30)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
