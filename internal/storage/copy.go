package storage

import (
	"context"
	"fmt"
)

// Migrator is implemented by providers backed by a versioned SQL schema
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// CopyStats counts the records moved by Copy
type CopyStats struct {
	Users         int
	Logs          int
	Notifications int
}

// Copy moves every record from src into dst, including soft-deleted logs.
// Users already present in dst are updated in place.
func Copy(ctx context.Context, src, dst Provider, logFn func(string)) (CopyStats, error) {
	if logFn == nil {
		logFn = func(string) {}
	}
	var stats CopyStats

	logFn("  Migrating settings...")
	settings, err := src.GetSettings(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(ctx, settings); err != nil {
		return stats, fmt.Errorf("failed to save settings to destination: %w", err)
	}

	logFn("  Migrating users...")
	users, err := src.GetAllUsers(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to get users from source: %w", err)
	}
	for _, u := range users {
		if _, err := dst.GetUser(ctx, u.ID); err == nil {
			err = dst.UpdateUser(ctx, u)
			if err != nil {
				return stats, fmt.Errorf("failed to update user %s: %w", u.ID, err)
			}
		} else if err := dst.AddUser(ctx, u); err != nil {
			return stats, fmt.Errorf("failed to add user %s: %w", u.ID, err)
		}
		stats.Users++
	}
	logFn(fmt.Sprintf("    Migrated %d users", stats.Users))

	logFn("  Migrating logs...")
	logs, err := src.GetAllLogs(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to get logs from source: %w", err)
	}
	for _, l := range logs {
		if err := dst.AddLog(ctx, l); err != nil {
			return stats, fmt.Errorf("failed to add log %s: %w", l.ID, err)
		}
		stats.Logs++
	}
	logFn(fmt.Sprintf("    Migrated %d logs", stats.Logs))

	logFn("  Migrating notifications...")
	notifications, err := src.GetAllNotifications(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to get notifications from source: %w", err)
	}
	for _, n := range notifications {
		if err := dst.AddNotification(ctx, n); err != nil {
			return stats, fmt.Errorf("failed to add notification %s: %w", n.ID, err)
		}
		stats.Notifications++
	}
	logFn(fmt.Sprintf("    Migrated %d notifications", stats.Notifications))

	return stats, nil
}
