package constants

const (
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingWeeklyWindow         = "weekly_window"
	SettingChartWindow          = "chart_window"
	SettingCurrentUserID        = "current_user_id"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
	DefaultWeeklyWindow         = 10 // most recent logs summed into the leaderboard score
	DefaultChartWindow          = 7  // bars in the history chart
)
