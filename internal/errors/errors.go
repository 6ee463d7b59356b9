package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"sync"

	"github.com/julianstephens/plop/internal/logger"
)

var (
	hintsMu sync.RWMutex
	hints   []hint
)

type hint struct {
	target error
	text   string
}

// RegisterHint attaches a follow-up suggestion to every error matching target
func RegisterHint(target error, text string) {
	hintsMu.Lock()
	defer hintsMu.Unlock()
	hints = append(hints, hint{target: target, text: text})
}

// Hint returns the registered suggestion for err, if any
func Hint(err error) string {
	hintsMu.RLock()
	defer hintsMu.RUnlock()
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.text
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if h := Hint(err); h != "" {
		return fmt.Sprintf("Error: %v (hint: %s)", err, h)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
