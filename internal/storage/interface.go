package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/plop/internal/constants"
	"github.com/julianstephens/plop/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Settings is an alias for models.Settings
type Settings = models.Settings

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error

	// Users
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error

	// Logs are returned newest first
	AddLog(ctx context.Context, log models.Log) error
	GetLogs(ctx context.Context, userID string, includeDeleted bool) ([]models.Log, error)
	DeleteLogs(ctx context.Context, userID string) (int, error)
	RestoreLogs(ctx context.Context, userID string) (int, error)

	// Notifications
	AddNotification(ctx context.Context, n models.Notification) error
	GetNotification(ctx context.Context, id string) (models.Notification, error)
	// GetNotifications returns the inbox of toUserID, newest first. An empty
	// status returns every status.
	GetNotifications(ctx context.Context, toUserID string, status models.NotificationStatus) ([]models.Notification, error)
	UpdateNotification(ctx context.Context, n models.Notification) error

	// Bulk Retrieval for Migration
	GetAllLogs(ctx context.Context) ([]models.Log, error)
	GetAllNotifications(ctx context.Context) ([]models.Notification, error)

	// Utils
	GetConfigPath() string
}

// DefaultSettings returns the settings written on first init
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		WeeklyWindow:         constants.DefaultWeeklyWindow,
		ChartWindow:          constants.DefaultChartWindow,
	}
}
