// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/microblog-server/internal/api/http/handler"
	"github.com/dtroode/microblog-server/internal/api/http/middleware"
)

// Handlers groups the endpoint handlers the router mounts.
type Handlers struct {
	Auth      *handler.Auth
	User      *handler.User
	Micropost *handler.Micropost
	Follow    *handler.Follow
}

// New builds the gin engine with all routes mounted under /api.
// Signup, login and token refresh are public; everything else requires a
// valid access token.
func New(h Handlers, authenticate *middleware.Authenticate, logging *middleware.Logging) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Handle)

	api := r.Group("/api")

	api.POST("/signup", h.Auth.Signup)
	api.POST("/login", h.Auth.Login)
	api.POST("/token/refresh", h.Auth.Refresh)
	api.POST("/logout", h.Auth.Logout)

	authed := api.Group("")
	authed.Use(authenticate.Handle)

	authed.GET("/users", h.User.List)
	authed.GET("/users/:id", h.User.Get)
	authed.PATCH("/users/:id", h.User.Update)
	authed.DELETE("/users/:id", h.User.Delete)
	authed.GET("/users/:id/following", h.User.Following)
	authed.GET("/users/:id/followers", h.User.Followers)
	authed.PUT("/users/:id/avatar", h.User.UploadAvatar)
	authed.GET("/users/:id/avatar", h.User.DownloadAvatar)
	authed.GET("/users/:id/microposts", h.Micropost.ByUser)

	authed.POST("/users/:id/follow", h.Follow.Create)
	authed.DELETE("/users/:id/follow", h.Follow.Delete)
	authed.GET("/users/:id/follow", h.Follow.Status)

	authed.POST("/microposts", h.Micropost.Create)
	authed.DELETE("/microposts/:id", h.Micropost.Delete)
	authed.GET("/feed", h.Micropost.Feed)

	return r
}
