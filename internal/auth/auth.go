// Package auth signs users in by phone or email. There are no real
// credentials: the password is format-checked and then discarded.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/plop/internal/constants"
	"github.com/julianstephens/plop/internal/logger"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/profile"
	"github.com/julianstephens/plop/internal/storage"
)

type Method string

const (
	MethodPhone Method = "phone"
	MethodEmail Method = "email"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrWeakPassword      = errors.New("password must be at least 6 characters long")
	ErrNotLoggedIn       = errors.New("not logged in")
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// 11-digit mainland mobile numbers
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

// ValidateIdentifier trims id and checks it against the method's format
func ValidateIdentifier(method Method, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: please enter your details", ErrInvalidIdentifier)
	}
	switch method {
	case MethodEmail:
		if !emailPattern.MatchString(id) {
			return "", fmt.Errorf("%w: please enter a valid email address", ErrInvalidIdentifier)
		}
	case MethodPhone:
		if !phonePattern.MatchString(id) {
			return "", fmt.Errorf("%w: please enter a valid 11-digit mobile number", ErrInvalidIdentifier)
		}
	default:
		return "", fmt.Errorf("%w: unknown method %q", ErrInvalidIdentifier, method)
	}
	return id, nil
}

func ValidatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

type Service struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{store: store, now: time.Now}
}

// Login finds the user behind the identifier, creating one on first sight,
// and makes them the current user.
func (s *Service) Login(ctx context.Context, method Method, identifier, password string) (models.User, error) {
	id, err := ValidateIdentifier(method, identifier)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	var user models.User
	if method == MethodPhone {
		user, err = s.store.GetUserByPhone(ctx, id)
	} else {
		user, err = s.store.GetUserByEmail(ctx, id)
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		user = s.newUser(method, id)
		if err := s.store.AddUser(ctx, user); err != nil {
			return models.User{}, err
		}
		logger.Info("Created user", "id", user.ID, "method", method)
	case err != nil:
		return models.User{}, err
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get settings: %w", err)
	}
	settings.CurrentUserID = user.ID
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return models.User{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return user, nil
}

func (s *Service) newUser(method Method, id string) models.User {
	now := s.now()
	u := models.User{
		ID:           constants.UserIDPrefix + uuid.NewString(),
		Avatar:       profile.RandomAvatar(),
		Friends:      []string{},
		Achievements: []string{},
		LastActive:   now,
		CreatedAt:    now,
	}
	if method == MethodPhone {
		u.Username = constants.MobileUsername
		u.Phone = id
	} else {
		u.Username = constants.EmailUsername
		u.Email = id
	}
	return u
}

func (s *Service) Logout(ctx context.Context) error {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.CurrentUserID == "" {
		return ErrNotLoggedIn
	}
	settings.CurrentUserID = ""
	return s.store.SaveSettings(ctx, settings)
}

// Current returns the signed-in user
func (s *Service) Current(ctx context.Context) (models.User, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.CurrentUserID == "" {
		return models.User{}, ErrNotLoggedIn
	}
	user, err := s.store.GetUser(ctx, settings.CurrentUserID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("%w: user %s no longer exists", ErrNotLoggedIn, settings.CurrentUserID)
	}
	return user, err
}
