package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/pagination"
	"github.com/dtroode/microblog-server/internal/policy"
)

const (
	nameMaxLen     = 50
	emailMaxLen    = 255
	passwordMinLen = 6
)

var emailRegexp = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-.]+\.[a-z]+$`)

// User implements account operations: signup, authentication, profile
// edits, admin deletion and listing.
type User struct {
	userStore      model.UserStore
	micropostStore model.MicropostStore
	followStore    model.FollowStore
	logger         *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	micropostStore model.MicropostStore,
	followStore model.FollowStore,
	logger *logger.Logger,
) *User {
	return &User{
		userStore:      userStore,
		micropostStore: micropostStore,
		followStore:    followStore,
		logger:         logger,
	}
}

// Create validates signup input and persists a new user. All violated
// rules are reported at once so the form can show every message.
func (s *User) Create(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	s.logger.Debug("User service: creating user", "email", params.Email)

	if ve := validateSignup(params); ve.HasErrors() {
		return model.User{}, ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(params.Name),
		Email:        strings.TrimSpace(params.Email),
		PasswordHash: hash,
	}

	savedUser, err := s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			ve := model.NewValidationError()
			ve.Add("email", "Email has already been taken")
			return model.User{}, ve
		}
		s.logger.Error("User service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user created",
		"user_id", savedUser.ID,
		"email", savedUser.Email)

	return savedUser, nil
}

// Authenticate returns the user matching email and password. The email is
// matched case-insensitively. Unknown email and wrong password both fail
// with ErrNotFound so callers cannot tell the cases apart.
func (s *User) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.userStore.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return model.User{}, model.ErrNotFound
	}

	return user, nil
}

// Get returns a user's profile with the counters the profile page shows.
func (s *User) Get(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	postCount, err := s.micropostStore.CountByUser(ctx, id)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to count microposts: %w", err)
	}
	followers, err := s.followStore.CountFollowers(ctx, id)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to count followers: %w", err)
	}
	following, err := s.followStore.CountFollowing(ctx, id)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to count following: %w", err)
	}

	return model.Profile{
		User:           user,
		MicropostCount: postCount,
		FollowerCount:  followers,
		FollowingCount: following,
	}, nil
}

// Update applies a profile edit. Only name, email and password can change;
// UpdateUserParams cannot carry anything else, so a payload trying to set
// the admin flag loses it before this point and the flag is never written.
func (s *User) Update(ctx context.Context, actorID, targetID uuid.UUID, params model.UpdateUserParams) (model.User, error) {
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

	ve := model.NewValidationError()
	if params.Name != nil {
		target.Name = strings.TrimSpace(*params.Name)
		validateName(ve, target.Name)
	}
	if params.Email != nil {
		target.Email = strings.TrimSpace(*params.Email)
		validateEmail(ve, target.Email)
	}
	if params.Password != nil {
		validatePassword(ve, *params.Password)
		if !ve.HasErrors() {
			hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
			if err != nil {
				return model.User{}, fmt.Errorf("failed to hash password: %w", err)
			}
			target.PasswordHash = hash
		}
	}
	if ve.HasErrors() {
		return model.User{}, ve
	}

	savedUser, err := s.userStore.Update(ctx, target)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			ve := model.NewValidationError()
			ve.Add("email", "Email has already been taken")
			return model.User{}, ve
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated", "user_id", savedUser.ID)

	return savedUser, nil
}

// Delete removes a user and, through the store's cascades, their
// microposts and follow edges. Admins only; deleting yourself is refused.
func (s *User) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	actor, err := s.userStore.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	target, err := s.userStore.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !actor.Admin {
		return model.ErrForbidden
	}
	if !policy.CanDeleteUser(actor, target) {
		ve := model.NewValidationError()
		ve.Add("user", "Admins cannot delete themselves")
		return ve
	}

	if err := s.userStore.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted",
		"user_id", targetID,
		"actor_id", actorID)

	return nil
}

// List returns one page of all users ordered by name.
func (s *User) List(ctx context.Context, page, perPage int) (pagination.Page[model.User], error) {
	page, perPage = pagination.Normalize(page, perPage)

	total, err := s.userStore.Count(ctx)
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.userStore.ListByName(ctx, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to list users: %w", err)
	}

	return pagination.FromOffset(users, total, page, perPage), nil
}

func validateSignup(params model.CreateUserParams) *model.ValidationError {
	ve := model.NewValidationError()

	validateName(ve, strings.TrimSpace(params.Name))
	validateEmail(ve, strings.TrimSpace(params.Email))
	validatePassword(ve, params.Password)
	if params.Password != params.PasswordConfirmation {
		ve.Add("password_confirmation", "Password confirmation doesn't match Password")
	}

	return ve
}

func validateName(ve *model.ValidationError, name string) {
	if name == "" {
		ve.Add("name", "Name can't be blank")
		return
	}
	if len(name) > nameMaxLen {
		ve.Add("name", fmt.Sprintf("Name is too long (maximum is %d characters)", nameMaxLen))
	}
}

// validateEmail runs the presence, length and format rules independently,
// so a blank email reports both the blank and the invalid messages.
func validateEmail(ve *model.ValidationError, email string) {
	if email == "" {
		ve.Add("email", "Email can't be blank")
	}
	if len(email) > emailMaxLen {
		ve.Add("email", fmt.Sprintf("Email is too long (maximum is %d characters)", emailMaxLen))
	}
	if !emailRegexp.MatchString(email) {
		ve.Add("email", "Email is invalid")
	}
}

// validatePassword reports both presence and length for a blank password,
// matching the signup form's behavior.
func validatePassword(ve *model.ValidationError, password string) {
	if password == "" {
		ve.Add("password", "Password can't be blank")
	}
	if len(password) < passwordMinLen {
		ve.Add("password", fmt.Sprintf("Password is too short (minimum is %d characters)", passwordMinLen))
	}
}
