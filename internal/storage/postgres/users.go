package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
)

const userColumns = `id, username, avatar, phone, email, friends, achievements,
	selected_achievement_id, weekly_score, total_logs, last_active, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var friends, achievements, createdAt string
	var lastActive sql.NullString

	err := row.Scan(
		&u.ID, &u.Username, &u.Avatar, &u.Phone, &u.Email, &friends, &achievements,
		&u.SelectedAchievementID, &u.WeeklyScore, &u.TotalLogs, &lastActive, &createdAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if u.Friends, err = storage.DecodeIDs(friends); err != nil {
		return models.User{}, err
	}
	if u.Achievements, err = storage.DecodeIDs(achievements); err != nil {
		return models.User{}, err
	}
	if la, err := storage.NullTime(lastActive); err != nil {
		return models.User{}, fmt.Errorf("parsing last_active: %w", err)
	} else if la != nil {
		u.LastActive = *la
	}
	if u.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.User{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return u, nil
}

func (s *Store) AddUser(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		u.ID, u.Username, u.Avatar, u.Phone, u.Email,
		storage.EncodeIDs(u.Friends), storage.EncodeIDs(u.Achievements),
		u.SelectedAchievementID, u.WeeklyScore, u.TotalLogs,
		storage.NullString(&u.LastActive), storage.FormatTime(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add user %s: %w", u.ID, err)
	}
	return nil
}

func (s *Store) getUserWhere(ctx context.Context, where string, arg any) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %v: %w", arg, storage.ErrNotFound)
	}
	return u, err
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.getUserWhere(ctx, "id = $1", id)
}

func (s *Store) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	if phone == "" {
		return models.User{}, fmt.Errorf("user with empty phone: %w", storage.ErrNotFound)
	}
	return s.getUserWhere(ctx, "phone = $1", phone)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	if email == "" {
		return models.User{}, fmt.Errorf("user with empty email: %w", storage.ErrNotFound)
	}
	return s.getUserWhere(ctx, "LOWER(email) = LOWER($1)", email)
}

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, u models.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET username = $1, avatar = $2, phone = $3, email = $4, friends = $5, achievements = $6,
			selected_achievement_id = $7, weekly_score = $8, total_logs = $9, last_active = $10
		WHERE id = $11`,
		u.Username, u.Avatar, u.Phone, u.Email,
		storage.EncodeIDs(u.Friends), storage.EncodeIDs(u.Achievements),
		u.SelectedAchievementID, u.WeeklyScore, u.TotalLogs, storage.NullString(&u.LastActive),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", u.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", u.ID, storage.ErrNotFound)
	}
	return nil
}
