package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/models"
)

// userService is the concrete implementation of [UserService].
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a [UserService] on top of the given repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// GetProfile assembles the caller's own account view including stored
// dietary preferences.
func (u *userService) GetProfile(ctx context.Context, user models.User) (models.Profile, error) {
	log := logger.FromContext(ctx)

	preferences, err := u.userRepository.GetPreferences(ctx, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "userService.GetProfile").Int64("user_id", user.UserID).Msg("loading preferences failed")
		return models.Profile{}, fmt.Errorf("loading preferences failed: %w", err)
	}

	return models.Profile{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		Allergies: preferences,
	}, nil
}

// UpdateProfile replaces the caller's mutable profile fields and preference
// set in one transaction, then returns the fresh profile view.
//
// Preferences are trimmed and blank entries dropped; the surviving list
// replaces whatever was stored before.
func (u *userService) UpdateProfile(ctx context.Context, user models.User, req models.ProfileUpdateRequest) (models.Profile, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		return models.Profile{}, ErrInvalidDataProvided
	}

	preferences := make([]string, 0, len(req.Allergies))
	for _, entry := range req.Allergies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		preferences = append(preferences, entry)
	}

	user.Username = username
	user.Email = email

	if err := u.userRepository.UpdateUserProfile(ctx, user, preferences); err != nil {
		log.Err(err).Str("func", "userService.UpdateProfile").Int64("user_id", user.UserID).Msg("profile update ended with error")
		return models.Profile{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return models.Profile{
		UserID:    user.UserID,
		Username:  username,
		Email:     email,
		IsAdmin:   user.IsAdmin,
		Allergies: preferences,
	}, nil
}

// ListUsers returns every registered account. The admin gate lives in the
// handler layer.
func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return u.userRepository.ListUsers(ctx)
}
