// Package notifier pushes toast messages to the plop-tray companion app.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/plop/internal/constants"
)

// ErrTrayNotRunning is returned when no live tray process owns the lockfile
var ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")

const secretHeader = "X-Plop-Secret"

type Payload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

type Notifier struct {
	configDir   func() (string, error)
	findProcess func(int) (ps.Process, error)
	client      *http.Client
	retries     int
	retryDelay  time.Duration
}

func New() *Notifier {
	return &Notifier{
		configDir:   os.UserConfigDir,
		findProcess: ps.FindProcess,
		client:      &http.Client{Timeout: 2 * time.Second},
		retries:     constants.NotifyMaxRetries,
		retryDelay:  constants.NotifyRetryDelay,
	}
}

// Notify delivers text to the tray app, retrying transient send failures.
// Lockfile problems are not retried.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := n.TrayConfigDir()
	if err != nil {
		return err
	}
	lock, err := n.readLockfile(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := Payload{Text: text, DurationMs: constants.NotificationDurationMs}
	for attempt := 1; ; attempt++ {
		err = n.send(ctx, lock, payload)
		if err == nil || attempt >= n.retries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.retryDelay):
		}
	}
}

// TrayConfigDir returns the tray app's config directory, honoring a custom
// lockfile_dir in its settings.json.
func (n *Notifier) TrayConfigDir() (string, error) {
	configDir, err := n.configDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayDir, nil
}

type lockfile struct {
	port   int
	pid    int
	secret string
}

// parseLockfile reads the "port|pid|secret" line written by the tray app
func parseLockfile(content string) (lockfile, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return lockfile{}, errors.New("lockfile is malformed")
	}
	if strings.TrimSpace(parts[0]) == "" {
		return lockfile{}, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return lockfile{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return lockfile{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return lockfile{}, errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(parts[2]) == "" {
		return lockfile{}, errors.New("secret in lockfile is empty")
	}
	return lockfile{port: port, pid: pid, secret: parts[2]}, nil
}

func (n *Notifier) readLockfile(path string) (lockfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return lockfile{}, ErrTrayNotRunning
	}
	lock, err := parseLockfile(string(content))
	if err != nil {
		return lockfile{}, err
	}

	process, err := n.findProcess(lock.pid)
	if err != nil || process == nil {
		return lockfile{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayAppExecutable) {
		return lockfile{}, fmt.Errorf("process with PID %d is not %s (is %s)", lock.pid, constants.TrayAppExecutable, process.Executable())
	}
	return lock, nil
}

func (n *Notifier) send(ctx context.Context, lock lockfile, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", lock.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, lock.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
