package model

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByName(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int64, error)
}

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	Admin        bool
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GravatarURL derives the profile image URL from the user's email,
// following the Gravatar convention (MD5 of the lowercased address).
func (u User) GravatarURL(size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%x?s=%d", sum, size)
}

// CreateUserParams contains signup input before validation and hashing.
type CreateUserParams struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// UpdateUserParams carries the only attributes a profile edit may change.
// The admin flag is deliberately not representable here; any value a
// client sends for it never reaches the store.
type UpdateUserParams struct {
	Name     *string
	Email    *string
	Password *string
}

// Profile is a user together with the counters shown on the profile page.
type Profile struct {
	User           User
	MicropostCount int64
	FollowerCount  int64
	FollowingCount int64
}
