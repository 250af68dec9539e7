package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/testutil"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *mockUserService, *mockTokenService) {
	t.Helper()

	userService := &mockUserService{}
	tokenService := &mockTokenService{}
	h := NewAuth(userService, tokenService, testutil.MakeNoopLogger())

	r := gin.New()
	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	r.POST("/api/token/refresh", h.Refresh)
	r.POST("/api/logout", h.Logout)
	return r, userService, tokenService
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_Signup(t *testing.T) {
	r, userService, tokenService := newAuthRouter(t)

	user := model.User{ID: uuid.New(), Name: "Example User", Email: "user@example.com"}
	userService.On("Create", mock.Anything, model.CreateUserParams{
		Name:                 "Example User",
		Email:                "user@example.com",
		Password:             "foobar",
		PasswordConfirmation: "foobar",
	}).Return(user, nil)
	tokenService.On("Issue", mock.Anything, user.ID).Return("access", "refresh", nil)

	w := postJSON(t, r, "/api/signup", gin.H{
		"name":                  "Example User",
		"email":                 "user@example.com",
		"password":              "foobar",
		"password_confirmation": "foobar",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "refresh", resp.RefreshToken)
}

func TestAuth_Signup_ValidationErrors(t *testing.T) {
	r, userService, tokenService := newAuthRouter(t)

	ve := model.NewValidationError()
	ve.Add("email", "Email is invalid")
	userService.On("Create", mock.Anything, mock.Anything).Return(model.User{}, ve)

	w := postJSON(t, r, "/api/signup", gin.H{"name": "User", "email": "bad"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Email is invalid")
	tokenService.AssertNotCalled(t, "Issue")
}

func TestAuth_Login(t *testing.T) {
	r, userService, tokenService := newAuthRouter(t)

	user := model.User{ID: uuid.New(), Email: "user@example.com"}
	userService.On("Authenticate", mock.Anything, "user@example.com", "foobar").Return(user, nil)
	tokenService.On("Issue", mock.Anything, user.ID).Return("access", "refresh", nil)

	w := postJSON(t, r, "/api/login", gin.H{"email": "user@example.com", "password": "foobar"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access")
}

func TestAuth_Login_BadCredentials(t *testing.T) {
	r, userService, tokenService := newAuthRouter(t)

	userService.On("Authenticate", mock.Anything, "user@example.com", "wrong").Return(model.User{}, model.ErrNotFound)

	w := postJSON(t, r, "/api/login", gin.H{"email": "user@example.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email/password combination")
	tokenService.AssertNotCalled(t, "Issue")
}

func TestAuth_Refresh(t *testing.T) {
	r, _, tokenService := newAuthRouter(t)

	tokenService.On("Refresh", mock.Anything, "old-refresh").Return("new-access", "new-refresh", nil)

	w := postJSON(t, r, "/api/token/refresh", gin.H{"refresh_token": "old-refresh"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-access")
	assert.Contains(t, w.Body.String(), "new-refresh")
}

func TestAuth_Refresh_Revoked(t *testing.T) {
	r, _, tokenService := newAuthRouter(t)

	tokenService.On("Refresh", mock.Anything, "revoked").Return("", "", model.ErrTokenRevoked)

	w := postJSON(t, r, "/api/token/refresh", gin.H{"refresh_token": "revoked"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Logout(t *testing.T) {
	r, _, tokenService := newAuthRouter(t)

	tokenService.On("RevokeByToken", mock.Anything, "refresh").Return(nil)

	w := postJSON(t, r, "/api/logout", gin.H{"refresh_token": "refresh"})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuth_Logout_InvalidToken(t *testing.T) {
	r, _, tokenService := newAuthRouter(t)

	tokenService.On("RevokeByToken", mock.Anything, "garbage").Return(errors.New("token is malformed"))

	w := postJSON(t, r, "/api/logout", gin.H{"refresh_token": "garbage"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
