// Package profile edits the signed-in user's name, avatar and nameplate.
package profile

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"

	"github.com/julianstephens/plop/internal/achievements"
	"github.com/julianstephens/plop/internal/constants"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
)

var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrNotEarned     = errors.New("achievement not earned")
	ErrNotImage      = errors.New("file is not an image")
)

// maxAvatarBytes caps uploaded avatars stored inline as data URLs
const maxAvatarBytes = 2 << 20

type Service struct {
	store storage.Provider
}

func New(store storage.Provider) *Service {
	return &Service{store: store}
}

// Update renames the user and optionally swaps the avatar. An empty avatar
// keeps the current one.
func (s *Service) Update(ctx context.Context, userID, username, avatar string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, ErrEmptyUsername
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	user.Username = username
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SelectNameplate equips an earned achievement. Selecting the one already
// equipped takes it off.
func (s *Service) SelectNameplate(ctx context.Context, userID, id string) (models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !user.HasAchievement(id) {
		return models.User{}, fmt.Errorf("%s: %w", id, ErrNotEarned)
	}

	if user.SelectedAchievementID == id {
		user.SelectedAchievementID = ""
	} else {
		user.SelectedAchievementID = id
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

type Badge struct {
	achievements.Definition
	Earned   bool
	Equipped bool
}

// Badges lays out the whole catalog against what the user has earned
func Badges(user models.User) []Badge {
	catalog := achievements.Catalog()
	badges := make([]Badge, len(catalog))
	for i, def := range catalog {
		badges[i] = Badge{
			Definition: def,
			Earned:     user.HasAchievement(string(def.ID)),
			Equipped:   user.SelectedAchievementID == string(def.ID),
		}
	}
	return badges
}

// RandomAvatar returns a fresh placeholder image URL for the edit screen
func RandomAvatar() string {
	return fmt.Sprintf(constants.AvatarURLFormat, constants.AvatarEditSize, constants.AvatarEditSize, rand.IntN(constants.AvatarRandomRange))
}

// AvatarFromFile reads an image into a data URL
func AvatarFromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}
	if info.Size() > maxAvatarBytes {
		return "", fmt.Errorf("avatar %s is larger than %d bytes", path, maxAvatarBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s (%s): %w", path, mime, ErrNotImage)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
