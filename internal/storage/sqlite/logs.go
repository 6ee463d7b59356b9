package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
)

const logColumns = `id, user_id, date, duration_seconds, score, bristol_type, effort, color, deleted_at`

func scanLog(row rowScanner) (models.Log, error) {
	var l models.Log
	var date, color string
	var deletedAt sql.NullString

	err := row.Scan(&l.ID, &l.UserID, &date, &l.DurationSeconds, &l.Score, &l.TextureClass, &l.Effort, &color, &deletedAt)
	if err != nil {
		return models.Log{}, err
	}

	if l.Date, err = storage.ParseTime(date); err != nil {
		return models.Log{}, fmt.Errorf("parsing log date: %w", err)
	}
	if l.DeletedAt, err = storage.NullTime(deletedAt); err != nil {
		return models.Log{}, fmt.Errorf("parsing deleted_at: %w", err)
	}
	l.Color = models.Color(color)
	return l, nil
}

func (s *Store) AddLog(ctx context.Context, l models.Log) error {
	if err := l.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, storage.FormatTime(l.Date), l.DurationSeconds, l.Score,
		l.TextureClass, l.Effort, string(l.Color), storage.NullString(l.DeletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add log %s: %w", l.ID, err)
	}
	return nil
}

func (s *Store) queryLogs(ctx context.Context, query string, args ...any) ([]models.Log, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) GetLogs(ctx context.Context, userID string, includeDeleted bool) ([]models.Log, error) {
	query := "SELECT " + logColumns + " FROM logs WHERE user_id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY date DESC, id DESC"
	return s.queryLogs(ctx, query, userID)
}

func (s *Store) GetAllLogs(ctx context.Context) ([]models.Log, error) {
	return s.queryLogs(ctx, "SELECT "+logColumns+" FROM logs ORDER BY date DESC, id DESC")
}

func (s *Store) DeleteLogs(ctx context.Context, userID string) (int, error) {
	now := storage.FormatTime(time.Now())
	result, err := s.db.ExecContext(ctx, "UPDATE logs SET deleted_at = ? WHERE user_id = ? AND deleted_at IS NULL", now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete logs: %w", err)
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func (s *Store) RestoreLogs(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx, "UPDATE logs SET deleted_at = NULL WHERE user_id = ? AND deleted_at IS NOT NULL", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to restore logs: %w", err)
	}
	n, err := result.RowsAffected()
	return int(n), err
}
