package leaderboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/sqlite"
	"github.com/julianstephens/plop/internal/storage/storagetest"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func logsWithScores(scores ...int) []models.Log {
	logs := make([]models.Log, len(scores))
	for i, s := range scores {
		logs[i] = models.Log{ID: string(rune('a' + i)), Score: s}
	}
	return logs
}

func TestWeeklyScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		window int
		want   int
	}{
		{name: "empty", scores: nil, window: 10, want: 0},
		{name: "under window", scores: []int{100, 50}, window: 10, want: 150},
		{name: "window truncates oldest", scores: []int{10, 20, 30, 40}, window: 2, want: 30},
		{name: "zero window", scores: []int{10}, window: 0, want: 0},
		{name: "negative window", scores: []int{10}, window: -3, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeklyScore(logsWithScores(tt.scores...), tt.window); got != tt.want {
				t.Errorf("WeeklyScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	me := models.User{ID: "me", Username: "Me", SelectedAchievementID: "first_drop"}
	friends := []models.User{
		{ID: "f1", Username: "KingLog", WeeklyScore: 980, TotalLogs: 12, LastActive: now.Add(-2 * time.Hour)},
		{ID: "f3", Username: "RegularJoe", WeeklyScore: 200, TotalLogs: 7, LastActive: now.Add(-24 * time.Hour)},
	}
	myLogs := logsWithScores(100, 100, 100)

	entries := Build(me, myLogs, friends, 10, now)

	type row struct {
		Rank       int
		UserID     string
		Score      int
		TotalLogs  int
		LastActive string
		IsMe       bool
	}
	var got []row
	for _, e := range entries {
		got = append(got, row{e.Rank, e.UserID, e.Score, e.TotalLogs, e.LastActive, e.IsMe})
	}
	want := []row{
		{1, "f1", 980, 12, "2h ago", false},
		{2, "me", 300, 3, "Now", true},
		{3, "f3", 200, 7, "1d ago", false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
	if entries[1].Nameplate == nil || entries[1].Nameplate.Title == "" {
		t.Errorf("my nameplate = %+v", entries[1].Nameplate)
	}
	if entries[0].Nameplate != nil {
		t.Errorf("friend without nameplate got %+v", entries[0].Nameplate)
	}
}

func TestBuild_TiesKeepFriendsFirst(t *testing.T) {
	me := models.User{ID: "me"}
	friends := []models.User{{ID: "f1", WeeklyScore: 100}}
	entries := Build(me, logsWithScores(100), friends, 10, now)
	if entries[0].UserID != "f1" || entries[1].UserID != "me" {
		t.Errorf("tie order = %s, %s", entries[0].UserID, entries[1].UserID)
	}
}

func TestBuild_Alone(t *testing.T) {
	entries := Build(models.User{ID: "me"}, nil, nil, 10, now)
	if len(entries) != 1 || entries[0].Rank != 1 || !entries[0].IsMe || entries[0].Score != 0 {
		t.Errorf("Build() alone = %+v", entries)
	}
}

func TestSummary(t *testing.T) {
	tests := map[int]string{
		0: "You're all alone here! Add friends to compete.",
		1: "Competing against 1 friend",
		5: "Competing against 5 friends",
	}
	for n, want := range tests {
		if got := Summary(n); got != want {
			t.Errorf("Summary(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "plop.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer store.Close()

	if _, err := storage.SeedMockUsers(ctx, store, now); err != nil {
		t.Fatal(err)
	}
	me := storagetest.NewUser("me", "Me")
	me.Friends = []string{"f1", "f2", "ghost"}
	if err := store.AddUser(ctx, me); err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := store.AddLog(ctx, storagetest.NewLog(string(rune('a'+i)), "me", i)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := Load(ctx, store, "me", now)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Load() = %d entries, want 3", len(entries))
	}
	if entries[0].Username != "KingLog" || entries[1].Username != "FiberQueen" || !entries[2].IsMe {
		t.Errorf("Load() order = %s, %s, %s", entries[0].Username, entries[1].Username, entries[2].Username)
	}
	if entries[2].Score != 300 {
		t.Errorf("my score = %d, want 300", entries[2].Score)
	}
}
