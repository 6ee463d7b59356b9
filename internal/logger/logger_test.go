package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if got := Path(); got != filepath.Join(logDir, "plop.log") {
		t.Errorf("Path() = %q", got)
	}

	Debug("debug message")
	Info("info message")
	Warn("warning message", "key", "value")
	Error("error message")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "info message") {
		t.Error("info message written below warn level")
	}
	if !strings.Contains(string(data), "warning message") {
		t.Error("warning message missing from log file")
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() in debug mode error = %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("debug message in debug mode")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "debug message in debug mode") {
		t.Error("debug message missing from log file in debug mode")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil
	if err := Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestInitLevelOverride(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantInfo  bool
		wantDebug bool
	}{
		{name: "default warn", cfg: Config{}},
		{name: "info", cfg: Config{Level: "info"}, wantInfo: true},
		{name: "level beats debug", cfg: Config{Debug: true, Level: "error"}},
		{name: "debug", cfg: Config{Level: "debug"}, wantInfo: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ConfigDir = t.TempDir()
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			t.Cleanup(func() { _ = Close() })

			Debug("debug line")
			Info("info line")

			data, _ := os.ReadFile(Path())
			if got := strings.Contains(string(data), "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(string(data), "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestInitInvalidLevel(t *testing.T) {
	if err := Init(Config{Level: "loud", ConfigDir: t.TempDir()}); err == nil {
		t.Error("Init() with an unknown level should fail")
	}
}

func TestClose(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	if err := Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	// lumberjack reopens on the next write
	Warn("after close")
	data, _ := os.ReadFile(Path())
	if !strings.Contains(string(data), "after close") {
		t.Error("write after Close was lost")
	}
	_ = Close()
}
