package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/auth"
	apperrors "github.com/julianstephens/plop/internal/errors"
	"github.com/julianstephens/plop/internal/keyring"
	"github.com/julianstephens/plop/internal/logger"
	"github.com/julianstephens/plop/internal/profile"
	"github.com/julianstephens/plop/internal/social"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/postgres"
	"github.com/julianstephens/plop/internal/storage/sqlite"
)

func init() {
	apperrors.RegisterHint(auth.ErrNotLoggedIn, "run 'plop login' first")
	apperrors.RegisterHint(profile.ErrNotEarned, "see 'plop achievements list'")
	apperrors.RegisterHint(social.ErrAlreadyFriends, "see 'plop friends list'")
	apperrors.RegisterHint(postgres.ErrEmbeddedCredentials, "store the connection string with 'plop config set-connection' or use .pgpass")
	apperrors.RegisterHint(storage.ErrNotFound, "check the id and try again")
}

// OpenStore picks a provider for location: a PostgreSQL connection string,
// a .json document, or a sqlite database file. Passwords inside a connection
// string are refused unless allowCredentials is set, which callers do for
// values read from the keyring or environment.
func OpenStore(location string, allowCredentials bool) (storage.Provider, error) {
	switch {
	case postgres.IsConnString(location):
		_, err := postgres.ValidateConnString(location)
		if err != nil && !(allowCredentials && errors.Is(err, postgres.ErrEmbeddedCredentials)) {
			return nil, err
		}
		return postgres.New(location), nil
	case storage.IsJSONPath(location):
		return storage.NewJSONStore(location), nil
	default:
		return sqlite.NewStore(location), nil
	}
}

// KeyringLookup adapts the OS keyring for config.ResolveLocation. A missing
// or unreachable keyring counts as empty.
func KeyringLookup() (string, error) {
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return connStr, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", nil
	case errors.Is(err, keyring.ErrKeyringUnavailable):
		logger.Debug("OS keyring unavailable", "error", err)
		return "", nil
	default:
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
}
