package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether unlocks are pushed to the tray app
	WeeklyWindow         int    `json:"weekly_window"`         // number of recent logs summed for the leaderboard
	ChartWindow          int    `json:"chart_window"`          // number of logs shown in the history chart
	CurrentUserID        string `json:"current_user_id"`       // signed-in user, empty when logged out
}
