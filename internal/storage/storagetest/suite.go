// Package storagetest holds the behavioral suite every storage.Provider must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/plop/internal/constants"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
)

// Factory returns a freshly initialized provider. Cleanup is registered on t.
type Factory func(t *testing.T) storage.Provider

var base = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

// Run executes the suite, giving every subtest its own provider
func Run(t *testing.T, newProvider Factory) {
	t.Run("Settings", func(t *testing.T) { testSettings(t, newProvider(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newProvider(t)) })
	t.Run("Logs", func(t *testing.T) { testLogs(t, newProvider(t)) })
	t.Run("LogSoftDelete", func(t *testing.T) { testLogSoftDelete(t, newProvider(t)) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, newProvider(t)) })
}

// NewUser builds a user fixture
func NewUser(id, name string) models.User {
	return models.User{
		ID:           id,
		Username:     name,
		Avatar:       "https://picsum.photos/100/100?random=1",
		Friends:      []string{},
		Achievements: []string{},
		CreatedAt:    base,
		LastActive:   base,
	}
}

// NewLog builds a valid log fixture dayOffset days after the base date
func NewLog(id, userID string, dayOffset int) models.Log {
	return models.Log{
		ID:              id,
		UserID:          userID,
		Date:            base.AddDate(0, 0, dayOffset),
		DurationSeconds: 125,
		Score:           100,
		TextureClass:    4,
		Effort:          1,
		Color:           models.ColorBrown,
	}
}

func testSettings(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	settings, err := p.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.WeeklyWindow != constants.DefaultWeeklyWindow || settings.ChartWindow != constants.DefaultChartWindow {
		t.Errorf("default settings = %+v", settings)
	}

	settings.Timezone = "Asia/Shanghai"
	settings.NotificationsEnabled = false
	settings.WeeklyWindow = 5
	settings.CurrentUserID = "user_1"
	if err := p.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	got, err := p.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if diff := cmp.Diff(settings, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func testUsers(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	alice := NewUser("u1", "Alice")
	alice.Email = "alice@example.com"
	alice.Friends = []string{"u2"}
	bob := NewUser("u2", "Bob")
	bob.Phone = "13800138000"

	for _, u := range []models.User{alice, bob} {
		if err := p.AddUser(ctx, u); err != nil {
			t.Fatalf("AddUser(%s) error = %v", u.ID, err)
		}
	}

	got, err := p.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if diff := cmp.Diff(alice, got); diff != "" {
		t.Errorf("GetUser() mismatch (-want +got):\n%s", diff)
	}

	if _, err := p.GetUser(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
	}

	if u, err := p.GetUserByPhone(ctx, "13800138000"); err != nil || u.ID != "u2" {
		t.Errorf("GetUserByPhone() = %v, %v", u.ID, err)
	}
	if u, err := p.GetUserByEmail(ctx, "ALICE@example.com"); err != nil || u.ID != "u1" {
		t.Errorf("GetUserByEmail() = %v, %v", u.ID, err)
	}
	if _, err := p.GetUserByPhone(ctx, ""); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUserByPhone(empty) error = %v, want ErrNotFound", err)
	}

	alice.Achievements = []string{"first_drop"}
	alice.SelectedAchievementID = "first_drop"
	alice.WeeklyScore = 88
	alice.TotalLogs = 3
	if err := p.UpdateUser(ctx, alice); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	got, _ = p.GetUser(ctx, "u1")
	if diff := cmp.Diff(alice, got); diff != "" {
		t.Errorf("updated user mismatch (-want +got):\n%s", diff)
	}

	if err := p.UpdateUser(ctx, NewUser("ghost", "Ghost")); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateUser(ghost) error = %v, want ErrNotFound", err)
	}

	all, err := p.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAllUsers() len = %d, want 2", len(all))
	}
}

func testLogs(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	for i, l := range []models.Log{NewLog("l1", "u1", 0), NewLog("l2", "u1", 2), NewLog("l3", "u1", 1), NewLog("x1", "u2", 0)} {
		if err := p.AddLog(ctx, l); err != nil {
			t.Fatalf("AddLog(%d) error = %v", i, err)
		}
	}

	logs, err := p.GetLogs(ctx, "u1", false)
	if err != nil {
		t.Fatalf("GetLogs() error = %v", err)
	}
	var ids []string
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	if diff := cmp.Diff([]string{"l2", "l3", "l1"}, ids); diff != "" {
		t.Errorf("GetLogs() order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(NewLog("l2", "u1", 2), logs[0]); diff != "" {
		t.Errorf("GetLogs()[0] mismatch (-want +got):\n%s", diff)
	}

	invalid := NewLog("bad", "u1", 0)
	invalid.TextureClass = 9
	if err := p.AddLog(ctx, invalid); err == nil {
		t.Error("AddLog() accepted texture class 9")
	}

	all, err := p.GetAllLogs(ctx)
	if err != nil {
		t.Fatalf("GetAllLogs() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("GetAllLogs() len = %d, want 4", len(all))
	}
}

func testLogSoftDelete(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	for _, l := range []models.Log{NewLog("l1", "u1", 0), NewLog("l2", "u1", 1), NewLog("x1", "u2", 0)} {
		if err := p.AddLog(ctx, l); err != nil {
			t.Fatalf("AddLog() error = %v", err)
		}
	}

	n, err := p.DeleteLogs(ctx, "u1")
	if err != nil {
		t.Fatalf("DeleteLogs() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteLogs() = %d, want 2", n)
	}

	visible, _ := p.GetLogs(ctx, "u1", false)
	if len(visible) != 0 {
		t.Errorf("GetLogs() after delete len = %d, want 0", len(visible))
	}
	withDeleted, _ := p.GetLogs(ctx, "u1", true)
	if len(withDeleted) != 2 {
		t.Fatalf("GetLogs(includeDeleted) len = %d, want 2", len(withDeleted))
	}
	if withDeleted[0].DeletedAt == nil {
		t.Error("deleted log has no DeletedAt")
	}
	other, _ := p.GetLogs(ctx, "u2", false)
	if len(other) != 1 {
		t.Errorf("another user's logs were deleted")
	}

	if n, _ := p.DeleteLogs(ctx, "u1"); n != 0 {
		t.Errorf("second DeleteLogs() = %d, want 0", n)
	}

	n, err = p.RestoreLogs(ctx, "u1")
	if err != nil {
		t.Fatalf("RestoreLogs() error = %v", err)
	}
	if n != 2 {
		t.Errorf("RestoreLogs() = %d, want 2", n)
	}
	restored, _ := p.GetLogs(ctx, "u1", false)
	if len(restored) != 2 || restored[0].DeletedAt != nil {
		t.Errorf("restored logs = %+v", restored)
	}
}

func testNotifications(t *testing.T, p storage.Provider) {
	ctx := context.Background()

	n1 := models.Notification{
		ID: "n1", Type: models.NotificationFriendRequest, ToUserID: "u1", FromUserID: "u2",
		FromUsername: "Bob", FromAvatar: "a.png", Date: base, Status: models.StatusPending,
	}
	n2 := n1
	n2.ID, n2.FromUserID, n2.FromUsername, n2.Date = "n2", "u3", "Cara", base.Add(time.Hour)

	for _, n := range []models.Notification{n1, n2} {
		if err := p.AddNotification(ctx, n); err != nil {
			t.Fatalf("AddNotification(%s) error = %v", n.ID, err)
		}
	}

	dup := n1
	dup.ID = "n1-dup"
	if err := p.AddNotification(ctx, dup); err == nil {
		t.Error("AddNotification() accepted a second pending request for the same pair")
	}

	got, err := p.GetNotification(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNotification() error = %v", err)
	}
	if diff := cmp.Diff(n1, got); diff != "" {
		t.Errorf("GetNotification() mismatch (-want +got):\n%s", diff)
	}
	if _, err := p.GetNotification(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetNotification(missing) error = %v, want ErrNotFound", err)
	}

	pending, err := p.GetNotifications(ctx, "u1", models.StatusPending)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(pending) != 2 || pending[0].ID != "n2" {
		t.Errorf("GetNotifications(pending) = %+v, want n2 first", pending)
	}

	got.Status = models.StatusAccepted
	if err := p.UpdateNotification(ctx, got); err != nil {
		t.Fatalf("UpdateNotification() error = %v", err)
	}
	pending, _ = p.GetNotifications(ctx, "u1", models.StatusPending)
	if len(pending) != 1 {
		t.Errorf("pending after accept len = %d, want 1", len(pending))
	}
	all, _ := p.GetNotifications(ctx, "u1", "")
	if len(all) != 2 {
		t.Errorf("all notifications len = %d, want 2", len(all))
	}

	// A new request is allowed once the earlier one is answered
	if err := p.AddNotification(ctx, dup); err != nil {
		t.Errorf("AddNotification() after accept error = %v", err)
	}

	if err := p.UpdateNotification(ctx, models.Notification{ID: "missing", Status: models.StatusDeclined}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateNotification(missing) error = %v, want ErrNotFound", err)
	}

	everything, err := p.GetAllNotifications(ctx)
	if err != nil {
		t.Fatalf("GetAllNotifications() error = %v", err)
	}
	if len(everything) != 3 {
		t.Errorf("GetAllNotifications() len = %d, want 3", len(everything))
	}
}
