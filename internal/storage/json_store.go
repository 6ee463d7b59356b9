package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/plop/internal/models"
)

// Keys of the JSON document, named after the web app's localStorage keys
const (
	KeyUser          = "poop_user"
	KeyLogs          = "poop_logs"
	KeyNotifications = "poop_notifications"
	KeyAllUsers      = "poop_all_users"
	KeySettings      = "plop_settings"
)

// Document is the on-disk layout of the JSON store
type Document struct {
	User          *models.User          `json:"poop_user"`
	Logs          []models.Log          `json:"poop_logs"`
	Notifications []models.Notification `json:"poop_notifications"`
	AllUsers      []models.User         `json:"poop_all_users"`
	Settings      *Settings             `json:"plop_settings,omitempty"`
}

var _ Provider = (*JSONStore)(nil)

type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *Document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// IsJSONPath reports whether config names a JSON document store
func IsJSONPath(config string) bool {
	return strings.EqualFold(filepath.Ext(config), ".json")
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-running init keeps existing data
	if _, err := os.Stat(s.path); err == nil {
		if err := s.read(); err != nil {
			return err
		}
		if s.doc.Settings == nil {
			settings := DefaultSettings()
			s.doc.Settings = &settings
			return s.save()
		}
		return nil
	}

	settings := DefaultSettings()
	s.doc = &Document{Settings: &settings}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'plop init' first")
	}
	return s.read()
}

func (s *JSONStore) read() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Hand-written documents may carry the signed-in profile only under poop_user
	if doc.User != nil && indexUser(doc.AllUsers, doc.User.ID) < 0 {
		doc.AllUsers = append(doc.AllUsers, *doc.User)
	}
	if doc.Settings == nil {
		settings := DefaultSettings()
		if doc.User != nil {
			settings.CurrentUserID = doc.User.ID
		}
		doc.Settings = &settings
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the document through a temp file and rename
func (s *JSONStore) save() error {
	s.syncCurrentUser()

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// syncCurrentUser keeps poop_user pointing at the signed-in profile
func (s *JSONStore) syncCurrentUser() {
	s.doc.User = nil
	if s.doc.Settings == nil || s.doc.Settings.CurrentUserID == "" {
		return
	}
	if i := indexUser(s.doc.AllUsers, s.doc.Settings.CurrentUserID); i >= 0 {
		u := s.doc.AllUsers[i]
		s.doc.User = &u
	}
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func indexUser(users []models.User, id string) int {
	return slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
}

func (s *JSONStore) GetSettings(ctx context.Context) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return Settings{}, err
	}
	if s.doc.Settings == nil {
		return Settings{}, fmt.Errorf("settings not found")
	}
	return *s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = &settings
	return s.save()
}

func (s *JSONStore) AddUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if indexUser(s.doc.AllUsers, user.ID) >= 0 {
		return fmt.Errorf("failed to add user %s: already exists", user.ID)
	}
	s.doc.AllUsers = append(s.doc.AllUsers, user)
	return s.save()
}

func (s *JSONStore) findUser(match func(models.User) bool, what string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.User{}, err
	}
	for _, u := range s.doc.AllUsers {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", what, ErrNotFound)
}

func (s *JSONStore) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.ID == id }, id)
}

func (s *JSONStore) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return phone != "" && u.Phone == phone }, phone)
}

func (s *JSONStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return email != "" && strings.EqualFold(u.Email, email) }, email)
}

func (s *JSONStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return slices.Clone(s.doc.AllUsers), nil
}

func (s *JSONStore) UpdateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	i := indexUser(s.doc.AllUsers, user.ID)
	if i < 0 {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	// created_at is immutable, as in the SQL backends
	user.CreatedAt = s.doc.AllUsers[i].CreatedAt
	s.doc.AllUsers[i] = user
	return s.save()
}

func newestFirst(a, b models.Log) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func (s *JSONStore) AddLog(ctx context.Context, log models.Log) error {
	if err := log.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if slices.ContainsFunc(s.doc.Logs, func(l models.Log) bool { return l.ID == log.ID }) {
		return fmt.Errorf("failed to add log %s: already exists", log.ID)
	}
	s.doc.Logs = append(s.doc.Logs, log)
	return s.save()
}

func (s *JSONStore) GetLogs(ctx context.Context, userID string, includeDeleted bool) ([]models.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var logs []models.Log
	for _, l := range s.doc.Logs {
		if l.UserID != userID || (!includeDeleted && l.DeletedAt != nil) {
			continue
		}
		logs = append(logs, l)
	}
	slices.SortFunc(logs, newestFirst)
	return logs, nil
}

func (s *JSONStore) GetAllLogs(ctx context.Context) ([]models.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	logs := slices.Clone(s.doc.Logs)
	slices.SortFunc(logs, newestFirst)
	return logs, nil
}

func (s *JSONStore) DeleteLogs(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	n := 0
	for i := range s.doc.Logs {
		if s.doc.Logs[i].UserID == userID && s.doc.Logs[i].DeletedAt == nil {
			s.doc.Logs[i].DeletedAt = &now
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.save()
}

func (s *JSONStore) RestoreLogs(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return 0, err
	}
	n := 0
	for i := range s.doc.Logs {
		if s.doc.Logs[i].UserID == userID && s.doc.Logs[i].DeletedAt != nil {
			s.doc.Logs[i].DeletedAt = nil
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.save()
}

func (s *JSONStore) AddNotification(ctx context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	for _, existing := range s.doc.Notifications {
		if existing.ID == n.ID {
			return fmt.Errorf("failed to add notification %s: already exists", n.ID)
		}
		if n.IsPending() && existing.IsPending() && existing.Type == n.Type &&
			existing.ToUserID == n.ToUserID && existing.FromUserID == n.FromUserID {
			return fmt.Errorf("failed to add notification %s: pending request already exists", n.ID)
		}
	}
	s.doc.Notifications = append(s.doc.Notifications, n)
	return s.save()
}

func (s *JSONStore) GetNotification(ctx context.Context, id string) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Notification{}, err
	}
	for _, n := range s.doc.Notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Notification{}, fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

func notificationsNewestFirst(a, b models.Notification) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func (s *JSONStore) GetNotifications(ctx context.Context, toUserID string, status models.NotificationStatus) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []models.Notification
	for _, n := range s.doc.Notifications {
		if n.ToUserID == toUserID && (status == "" || n.Status == status) {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, notificationsNewestFirst)
	return out, nil
}

func (s *JSONStore) GetAllNotifications(ctx context.Context) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := slices.Clone(s.doc.Notifications)
	slices.SortFunc(out, notificationsNewestFirst)
	return out, nil
}

func (s *JSONStore) UpdateNotification(ctx context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	for i := range s.doc.Notifications {
		if s.doc.Notifications[i].ID == n.ID {
			s.doc.Notifications[i].Status = n.Status
			return s.save()
		}
	}
	return fmt.Errorf("notification %s: %w", n.ID, ErrNotFound)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
