// Package logger writes plop's structured log to a rotating file under the
// config directory. Nothing reaches stderr unless debug output is on.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/plop/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	file *lumberjack.Logger
)

type Config struct {
	Debug bool
	// Level overrides the level picked by Debug, e.g. "info"
	Level     string
	ConfigDir string
}

func Init(cfg Config) error {
	level, err := levelFor(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	if err := Close(); err != nil {
		return err
	}
	file = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	var w io.Writer = file
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, file)
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		CallerOffset:    1, // the package-level helpers below
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func levelFor(cfg Config) (log.Level, error) {
	switch {
	case cfg.Level != "":
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return 0, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		return level, nil
	case cfg.Debug:
		return log.DebugLevel, nil
	default:
		return log.WarnLevel, nil
	}
}

// Path returns the active log file, or "" before Init
func Path() string {
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close flushes and releases the log file. Logging after Close reopens it.
func Close() error {
	if file == nil {
		return nil
	}
	return file.Close()
}

func logAt(level log.Level, msg string, keyvals []any) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...any) { logAt(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...any) { logAt(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...any) { logAt(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...any) { logAt(log.ErrorLevel, msg, keyvals) }

// Fatal logs msg, closes the log file and exits with status 1
func Fatal(msg string, keyvals ...any) {
	logAt(log.FatalLevel, msg, keyvals)
	_ = Close()
	os.Exit(1)
}
