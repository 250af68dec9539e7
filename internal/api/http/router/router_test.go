package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apictx "github.com/dtroode/microblog-server/internal/api/http/context"
	"github.com/dtroode/microblog-server/internal/api/http/handler"
	"github.com/dtroode/microblog-server/internal/api/http/middleware"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// rejectAllTokens fails every token lookup, so authenticated routes must
// answer 401 before reaching their handlers.
type rejectAllTokens struct{}

func (rejectAllTokens) GetUserID(context.Context, string) (uuid.UUID, error) {
	return uuid.Nil, model.ErrForbidden
}

func newRouter() *gin.Engine {
	log := testutil.MakeNoopLogger()
	cm := apictx.NewManager()

	h := Handlers{
		Auth:      handler.NewAuth(nil, nil, log),
		User:      handler.NewUser(nil, nil, nil, cm, 30, log),
		Micropost: handler.NewMicropost(nil, cm, 30, log),
		Follow:    handler.NewFollow(nil, cm, log),
	}
	return New(h, middleware.NewAuthenticate(rejectAllTokens{}, cm, log), middleware.NewLogging(log))
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	r := newRouter()

	id := uuid.NewString()
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/" + id},
		{http.MethodPatch, "/api/users/" + id},
		{http.MethodDelete, "/api/users/" + id},
		{http.MethodGet, "/api/users/" + id + "/following"},
		{http.MethodGet, "/api/users/" + id + "/followers"},
		{http.MethodPut, "/api/users/" + id + "/avatar"},
		{http.MethodGet, "/api/users/" + id + "/avatar"},
		{http.MethodGet, "/api/users/" + id + "/microposts"},
		{http.MethodPost, "/api/users/" + id + "/follow"},
		{http.MethodDelete, "/api/users/" + id + "/follow"},
		{http.MethodGet, "/api/users/" + id + "/follow"},
		{http.MethodPost, "/api/microposts"},
		{http.MethodDelete, "/api/microposts/" + id},
		{http.MethodGet, "/api/feed"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_PublicRoutesReachHandlers(t *testing.T) {
	r := newRouter()

	// Malformed bodies stop at binding, proving the routes are mounted
	// and not behind the auth middleware.
	for _, path := range []string{"/api/signup", "/api/login", "/api/token/refresh", "/api/logout"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("not-json"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
