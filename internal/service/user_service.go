// Package service holds the business rules behind every API operation.
// Services take the acting username as an explicit argument; they never
// read it from ambient request state.
package service

import (
	"context"
	"strings"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/observability"
	"github.com/Zarsham27/social-networking-web-app/internal/repository"
	"github.com/Zarsham27/social-networking-web-app/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides registration, authentication and profile logic.
type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates an account with an empty bio, location and profile image.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	displayName := strings.TrimSpace(in.DisplayName)
	email := strings.TrimSpace(in.Email)

	if username == "" || in.Password == "" || displayName == "" || email == "" {
		return nil, models.NewValidationError("Username, password, display name and email are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:    username,
		Password:    string(hashed),
		DisplayName: displayName,
		Email:       email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.RegistrationsTotal.Inc()
	return user, nil
}

// Authenticate checks credentials. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			observability.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, models.NewUnauthorizedError("Invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// GetProfile returns the public profile of username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetProfile(ctx, username)
}

// UpdateProfile applies only the fields present in the update. Bio and
// location may be cleared with an empty string; an empty display name or
// email counts as not sent.
func (s *UserService) UpdateProfile(ctx context.Context, username string, in models.ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}

	if in.DisplayName != nil {
		if v := strings.TrimSpace(*in.DisplayName); v != "" {
			fields["display_name"] = v
		}
	}
	if in.Email != nil {
		if v := strings.TrimSpace(*in.Email); v != "" {
			if err := validation.ValidateEmail(v); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			fields["email"] = v
		}
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("Nothing to update")
	}
	return s.userRepo.Update(ctx, username, fields)
}

// UpdateProfileImage points the profile picture at an uploaded image.
func (s *UserService) UpdateProfileImage(ctx context.Context, username, imageURL string) (*models.User, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, models.NewValidationError("Image is required")
	}
	return s.userRepo.Update(ctx, username, map[string]interface{}{"profile_image": imageURL})
}

// SearchUsers matches query anywhere in the username, ignoring case. An
// empty query lists everyone.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	return s.userRepo.Search(ctx, strings.TrimSpace(query))
}
