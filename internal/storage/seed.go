package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/plop/internal/constants"
	"github.com/julianstephens/plop/internal/models"
)

type mockUser struct {
	id           string
	username     string
	weeklyScore  int
	totalLogs    int
	lastActive   time.Duration
	friends      []string
	achievements []string
}

var mockUsers = []mockUser{
	{"f1", "KingLog", 980, 12, 2 * time.Hour, []string{"f2", "f3"}, []string{"first_drop", "streak_7"}},
	{"f2", "FiberQueen", 850, 8, 5 * time.Hour, []string{"f1"}, []string{"first_drop"}},
	{"f3", "RegularJoe", 720, 7, 24 * time.Hour, []string{"f1"}, nil},
	{"f4", "TacoTuesday", 450, 15, 10 * time.Minute, nil, nil},
	{"f5", "SplashZone", 320, 4, 3 * 24 * time.Hour, nil, nil},
	{"f6", "PoopMaster3000", 120, 2, 7 * 24 * time.Hour, nil, nil},
}

// MockUsers returns the demo community written on first init
func MockUsers(now time.Time) []models.User {
	users := make([]models.User, 0, len(mockUsers))
	for i, m := range mockUsers {
		users = append(users, models.User{
			ID:           m.id,
			Username:     m.username,
			Avatar:       fmt.Sprintf(constants.AvatarURLFormat, constants.AvatarSize, constants.AvatarSize, i+1),
			Friends:      append([]string{}, m.friends...),
			Achievements: append([]string{}, m.achievements...),
			WeeklyScore:  m.weeklyScore,
			TotalLogs:    m.totalLogs,
			LastActive:   now.Add(-m.lastActive),
			CreatedAt:    now,
		})
	}
	return users
}

// SeedMockUsers inserts any demo users that are missing and returns how many
// were added. Existing users are left untouched.
func SeedMockUsers(ctx context.Context, p Provider, now time.Time) (int, error) {
	added := 0
	for _, u := range MockUsers(now) {
		_, err := p.GetUser(ctx, u.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return added, fmt.Errorf("failed to check user %s: %w", u.ID, err)
		}
		if err := p.AddUser(ctx, u); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
