package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/plop/internal/constants"
)

// FormatTime renders t in the stored timestamp layout
func FormatTime(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

// ParseTime reads a stored timestamp. RFC3339 is accepted for rows written
// by older builds or imported from elsewhere.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(constants.TimestampFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// NullTime converts an optional timestamp column
func NullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NullString converts an optional timestamp for storage
func NullString(t *time.Time) sql.NullString {
	if t == nil || t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}

// EncodeIDs stores an id list as a JSON array
func EncodeIDs(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

// DecodeIDs reads a JSON array column
func DecodeIDs(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	ids := []string{}
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, fmt.Errorf("invalid id list %q: %w", s, err)
	}
	return ids, nil
}

// SettingsToRows flattens settings into key/value rows
func SettingsToRows(s Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             s.Timezone,
		constants.SettingNotificationsEnabled: strconv.FormatBool(s.NotificationsEnabled),
		constants.SettingWeeklyWindow:         strconv.Itoa(s.WeeklyWindow),
		constants.SettingChartWindow:          strconv.Itoa(s.ChartWindow),
		constants.SettingCurrentUserID:        s.CurrentUserID,
	}
}

// SettingsFromRows rebuilds settings from key/value rows. Missing keys keep
// their defaults.
func SettingsFromRows(rows map[string]string) (Settings, error) {
	if len(rows) == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	settings := DefaultSettings()
	for key, value := range rows {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingWeeklyWindow:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.WeeklyWindow = n
		case constants.SettingChartWindow:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ChartWindow = n
		case constants.SettingCurrentUserID:
			settings.CurrentUserID = value
		}
	}
	return settings, nil
}
