package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/pagination"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Create(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, actorID, targetID uuid.UUID, params model.UpdateUserParams) (model.User, error) {
	args := m.Called(ctx, actorID, targetID, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	args := m.Called(ctx, actorID, targetID)
	return args.Error(0)
}

func (m *mockUserService) List(ctx context.Context, page, perPage int) (pagination.Page[model.User], error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).(pagination.Page[model.User]), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, userID uuid.UUID) (string, string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) RevokeByToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type mockFollowService struct {
	mock.Mock
}

func (m *mockFollowService) Follow(ctx context.Context, followerID, followedID uuid.UUID) (model.FollowCounts, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Get(0).(model.FollowCounts), args.Error(1)
}

func (m *mockFollowService) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (model.FollowCounts, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Get(0).(model.FollowCounts), args.Error(1)
}

func (m *mockFollowService) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowService) Counts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.FollowCounts), args.Error(1)
}

func (m *mockFollowService) Following(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.User], error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).(pagination.Page[model.User]), args.Error(1)
}

func (m *mockFollowService) Followers(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.User], error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).(pagination.Page[model.User]), args.Error(1)
}

type mockMicropostService struct {
	mock.Mock
}

func (m *mockMicropostService) Create(ctx context.Context, userID uuid.UUID, content string) (model.Micropost, error) {
	args := m.Called(ctx, userID, content)
	return args.Get(0).(model.Micropost), args.Error(1)
}

func (m *mockMicropostService) Delete(ctx context.Context, actorID, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, actorID, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMicropostService) Feed(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.Micropost], error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).(pagination.Page[model.Micropost]), args.Error(1)
}

func (m *mockMicropostService) ByUser(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.Micropost], error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).(pagination.Page[model.Micropost]), args.Error(1)
}

type mockAvatarService struct {
	mock.Mock
}

func (m *mockAvatarService) Upload(ctx context.Context, actorID, targetID uuid.UUID, reader io.Reader, size int64, contentType string) (model.User, error) {
	args := m.Called(ctx, actorID, targetID, reader, size, contentType)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockAvatarService) Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
