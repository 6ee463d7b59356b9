// Package config resolves where plop keeps its data.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/plop/internal/constants"
)

// Env holds environment overrides. Command-line flags win over these.
type Env struct {
	Config       string `env:"PLOP_CONFIG"`
	DBConnection string `env:"PLOP_DB_CONNECTION"`
	Debug        bool   `env:"PLOP_DEBUG"`
	LogLevel     string `env:"PLOP_LOG_LEVEL"`
	Timezone     string `env:"PLOP_TIMEZONE"`
}

// LoadEnv reads the PLOP_* environment variables
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ConnectionLookup returns a stored connection string, or "" when none is stored
type ConnectionLookup func() (string, error)

// ResolveLocation picks the store location in order: an explicit --config flag,
// PLOP_DB_CONNECTION, a connection string in the keyring, PLOP_CONFIG, then the
// default sqlite path. The result has ~ expanded.
func ResolveLocation(flag string, e Env, lookup ConnectionLookup) (string, error) {
	if flag != "" && flag != constants.DefaultConfigPath {
		return ExpandPath(flag)
	}
	if e.DBConnection != "" {
		return e.DBConnection, nil
	}
	if lookup != nil {
		connStr, err := lookup()
		if err != nil {
			return "", err
		}
		if connStr != "" {
			return connStr, nil
		}
	}
	if e.Config != "" {
		return ExpandPath(e.Config)
	}
	return ExpandPath(constants.DefaultConfigPath)
}

// ExpandPath replaces a leading ~ with the home directory. Connection strings
// pass through unchanged.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// ConfigDir is the directory that holds logs, backups and file stores. For a
// remote database it falls back to the user config dir.
func ConfigDir(location string) (string, error) {
	if strings.Contains(location, "://") || strings.Contains(location, "host=") {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", errors.Join(errors.New("failed to resolve config directory"), err)
		}
		return filepath.Join(dir, constants.AppName), nil
	}
	return filepath.Dir(location), nil
}
