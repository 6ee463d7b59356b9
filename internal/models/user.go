package models

import (
	"slices"
	"time"
)

// User is a profile. The signed-in user and the mock friends share this shape.
type User struct {
	ID                    string    `json:"id"`
	Username              string    `json:"username"`
	Avatar                string    `json:"avatar"`
	Phone                 string    `json:"phone,omitempty"`
	Email                 string    `json:"email,omitempty"`
	Friends               []string  `json:"friends"`
	Achievements          []string  `json:"achievements"`
	SelectedAchievementID string    `json:"selected_achievement_id,omitempty"` // the nameplate
	WeeklyScore           int       `json:"weekly_score"`                      // leaderboard snapshot
	TotalLogs             int       `json:"total_logs"`                        // leaderboard snapshot
	LastActive            time.Time `json:"last_active"`
	CreatedAt             time.Time `json:"created_at"`
}

// IsFriend reports whether id is in the user's friend list
func (u *User) IsFriend(id string) bool {
	return slices.Contains(u.Friends, id)
}

// AddFriend appends id once. It returns false when id was already present.
func (u *User) AddFriend(id string) bool {
	if id == "" || id == u.ID || u.IsFriend(id) {
		return false
	}
	u.Friends = append(u.Friends, id)
	return true
}

// HasAchievement reports whether the achievement has been unlocked
func (u *User) HasAchievement(id string) bool {
	return slices.Contains(u.Achievements, id)
}
