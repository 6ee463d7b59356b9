package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/plop/internal/constants"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("PLOP_CONFIG", "/tmp/plop.json")
	t.Setenv("PLOP_DB_CONNECTION", "postgres://db/plop")
	t.Setenv("PLOP_DEBUG", "true")
	t.Setenv("PLOP_TIMEZONE", "Asia/Shanghai")
	t.Setenv("PLOP_LOG_LEVEL", "info")

	got, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	want := Env{Config: "/tmp/plop.json", DBConnection: "postgres://db/plop", Debug: true, LogLevel: "info", Timezone: "Asia/Shanghai"}
	if got != want {
		t.Errorf("LoadEnv() = %+v, want %+v", got, want)
	}
}

func TestLoadEnv_BadBool(t *testing.T) {
	t.Setenv("PLOP_DEBUG", "maybe")
	if _, err := LoadEnv(); err == nil {
		t.Error("LoadEnv() accepted PLOP_DEBUG=maybe")
	}
}

func TestResolveLocation(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	defaultPath := filepath.Join(home, ".config", "plop", "plop.db")
	keyring := func() (string, error) { return "postgres://keyring/plop", nil }
	empty := func() (string, error) { return "", nil }

	tests := []struct {
		name   string
		flag   string
		env    Env
		lookup ConnectionLookup
		want   string
	}{
		{name: "default", flag: constants.DefaultConfigPath, lookup: empty, want: defaultPath},
		{name: "explicit flag wins", flag: "/data/plop.db", env: Env{DBConnection: "postgres://env/plop"}, lookup: keyring, want: "/data/plop.db"},
		{name: "env connection", flag: constants.DefaultConfigPath, env: Env{DBConnection: "postgres://env/plop"}, lookup: keyring, want: "postgres://env/plop"},
		{name: "keyring", flag: constants.DefaultConfigPath, env: Env{Config: "/tmp/x.db"}, lookup: keyring, want: "postgres://keyring/plop"},
		{name: "env config", flag: "", env: Env{Config: "~/plop.json"}, lookup: empty, want: filepath.Join(home, "plop.json")},
		{name: "nil lookup", flag: "", lookup: nil, want: defaultPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLocation(tt.flag, tt.env, tt.lookup)
			if err != nil {
				t.Fatalf("ResolveLocation() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveLocation_LookupError(t *testing.T) {
	boom := errors.New("keyring locked")
	_, err := ResolveLocation("", Env{}, func() (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Errorf("ResolveLocation() error = %v, want %v", err, boom)
	}
}

func TestConfigDir(t *testing.T) {
	got, err := ConfigDir("/data/plop/plop.db")
	if err != nil || got != "/data/plop" {
		t.Errorf("ConfigDir(file) = %q, %v", got, err)
	}

	got, err = ConfigDir("postgres://db/plop")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(got) != constants.AppName {
		t.Errorf("ConfigDir(conn) = %q", got)
	}
}
