package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
)

const notificationColumns = `id, type, to_user_id, from_user_id, from_username, from_avatar, date, status`

func scanNotification(row rowScanner) (models.Notification, error) {
	var n models.Notification
	var typ, status, date string

	err := row.Scan(&n.ID, &typ, &n.ToUserID, &n.FromUserID, &n.FromUsername, &n.FromAvatar, &date, &status)
	if err != nil {
		return models.Notification{}, err
	}
	if n.Date, err = storage.ParseTime(date); err != nil {
		return models.Notification{}, fmt.Errorf("parsing notification date: %w", err)
	}
	n.Type = models.NotificationType(typ)
	n.Status = models.NotificationStatus(status)
	return n, nil
}

func (s *Store) AddNotification(ctx context.Context, n models.Notification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, string(n.Type), n.ToUserID, n.FromUserID, n.FromUsername, n.FromAvatar,
		storage.FormatTime(n.Date), string(n.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to add notification %s: %w", n.ID, err)
	}
	return nil
}

func (s *Store) GetNotification(ctx context.Context, id string) (models.Notification, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+notificationColumns+" FROM notifications WHERE id = $1", id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Notification{}, fmt.Errorf("notification %s: %w", id, storage.ErrNotFound)
	}
	return n, err
}

func (s *Store) queryNotifications(ctx context.Context, query string, args ...any) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) GetNotifications(ctx context.Context, toUserID string, status models.NotificationStatus) ([]models.Notification, error) {
	if status == "" {
		return s.queryNotifications(ctx,
			"SELECT "+notificationColumns+" FROM notifications WHERE to_user_id = $1 ORDER BY date DESC, id DESC", toUserID)
	}
	return s.queryNotifications(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE to_user_id = $1 AND status = $2 ORDER BY date DESC, id DESC",
		toUserID, string(status))
}

func (s *Store) GetAllNotifications(ctx context.Context) ([]models.Notification, error) {
	return s.queryNotifications(ctx, "SELECT "+notificationColumns+" FROM notifications ORDER BY date DESC, id DESC")
}

func (s *Store) UpdateNotification(ctx context.Context, n models.Notification) error {
	result, err := s.db.ExecContext(ctx, "UPDATE notifications SET status = $1 WHERE id = $2", string(n.Status), n.ID)
	if err != nil {
		return fmt.Errorf("failed to update notification %s: %w", n.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", n.ID, storage.ErrNotFound)
	}
	return nil
}
