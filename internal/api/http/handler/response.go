package handler

import (
	"time"

	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/pagination"
)

const gravatarSize = 80

type userResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Admin       bool      `json:"admin"`
	GravatarURL string    `json:"gravatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Admin:       u.Admin,
		GravatarURL: u.GravatarURL(gravatarSize),
		CreatedAt:   u.CreatedAt,
	}
}

func toUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type profileResponse struct {
	userResponse
	MicropostCount int64 `json:"micropost_count"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

func toProfileResponse(p model.Profile) profileResponse {
	return profileResponse{
		userResponse:   toUserResponse(p.User),
		MicropostCount: p.MicropostCount,
		FollowerCount:  p.FollowerCount,
		FollowingCount: p.FollowingCount,
	}
}

type micropostResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func toMicropostResponse(p model.Micropost) micropostResponse {
	return micropostResponse{
		ID:         p.ID.String(),
		UserID:     p.UserID.String(),
		AuthorName: p.AuthorName,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
	}
}

func toMicropostResponses(posts []model.Micropost) []micropostResponse {
	out := make([]micropostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toMicropostResponse(p))
	}
	return out
}

type pageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

func toPageMeta[T any](p pagination.Page[T]) pageMeta {
	return pageMeta{
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
	}
}
