package sqlite

import (
	"context"

	"github.com/julianstephens/plop/internal/storage"
)

func (s *Store) GetSettings(ctx context.Context) (storage.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return storage.Settings{}, err
	}
	defer rows.Close()

	kv := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return storage.Settings{}, err
		}
		kv[key] = value
	}
	if err := rows.Err(); err != nil {
		return storage.Settings{}, err
	}

	return storage.SettingsFromRows(kv)
}

func (s *Store) SaveSettings(ctx context.Context, settings storage.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range storage.SettingsToRows(settings) {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) getSettings() (storage.Settings, error) {
	return s.GetSettings(context.Background())
}

func (s *Store) saveSettings(settings storage.Settings) error {
	return s.SaveSettings(context.Background(), settings)
}
