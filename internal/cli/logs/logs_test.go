package logs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/plop/internal/auth"
	"github.com/julianstephens/plop/internal/cli/clitest"
	"github.com/julianstephens/plop/internal/scoring"
)

func TestLogCmd(t *testing.T) {
	env := clitest.LoggedIn(t)

	cmd := &LogCmd{Texture: 4, Effort: 1, Color: "brown", Duration: "02:30"}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	out := env.Output()
	for _, want := range []string{"🐍 Perfect Snake in 02:30", "Score: 100 (good)", "Achievement unlocked: 黄金开局"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// A second log unlocks nothing new
	if err := (&LogCmd{Texture: 1, Effort: 10, Color: "Black", Duration: "90"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out = env.Output()
	if !strings.Contains(out, "Score: 14 (poor)") {
		t.Errorf("output = %q, want score 14", out)
	}
	if strings.Contains(out, "unlocked") {
		t.Errorf("unexpected unlock: %q", out)
	}
}

func TestLogCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     LogCmd
		wantErr error
	}{
		{name: "texture out of range", cmd: LogCmd{Texture: 8, Effort: 1, Color: "Brown"}, wantErr: scoring.ErrInvalidInput},
		{name: "effort out of range", cmd: LogCmd{Texture: 4, Effort: 11, Color: "Brown"}, wantErr: scoring.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.LoggedIn(t)
			if err := tt.cmd.Run(env.Ctx); !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("bad color", func(t *testing.T) {
		env := clitest.LoggedIn(t)
		if err := (&LogCmd{Texture: 4, Effort: 1, Color: "Purple"}).Run(env.Ctx); err == nil {
			t.Error("expected color error")
		}
	})

	t.Run("not logged in", func(t *testing.T) {
		env := clitest.New(t)
		if err := (&LogCmd{Texture: 4, Effort: 1, Color: "Brown"}).Run(env.Ctx); !errors.Is(err, auth.ErrNotLoggedIn) {
			t.Errorf("Run() error = %v, want ErrNotLoggedIn", err)
		}
	})
}

func TestLogCmd_Backdated(t *testing.T) {
	env := clitest.LoggedIn(t)

	for _, day := range []string{"2026-02-24", "2026-02-25", "2026-02-26", "2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"} {
		if err := (&LogCmd{Texture: 4, Effort: 2, Color: "Brown", At: day}).Run(env.Ctx); err != nil {
			t.Fatalf("log %s: %v", day, err)
		}
	}
	if !strings.Contains(env.Output(), "Achievement unlocked: 肠道劳模") {
		t.Error("seven consecutive days should unlock the streak")
	}
}

func TestHistoryCmds(t *testing.T) {
	env := clitest.LoggedIn(t)

	if err := (&HistoryListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Output(), "No logs yet") {
		t.Error("expected empty history message")
	}

	for _, day := range []string{"2026-02-27", "2026-02-28", "2026-03-01"} {
		if err := (&LogCmd{Texture: 3, Effort: 2, Color: "Light", At: day}).Run(env.Ctx); err != nil {
			t.Fatal(err)
		}
	}
	env.Output()

	if err := (&HistoryListCmd{Limit: 2}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("listed %d lines, want 2:\n%s", lines, out)
	}
	if !strings.HasPrefix(out, "2026-03-01") {
		t.Errorf("newest log should come first:\n%s", out)
	}

	if err := (&HistoryChartCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out = env.Output()
	if !strings.HasPrefix(out, "Fri │") {
		t.Errorf("chart should start with the oldest day:\n%s", out)
	}

	env.Input("n")
	if err := (&HistoryClearCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Output(), "Cancelled.") {
		t.Error("declined prompt should cancel")
	}

	env.Input("y")
	if err := (&HistoryClearCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Output(), "Cleared 3 log(s)") {
		t.Error("expected 3 cleared logs")
	}

	user, err := env.Ctx.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalLogs != 0 {
		t.Errorf("total logs = %d after clear, want 0", user.TotalLogs)
	}
	if !user.HasAchievement("first_drop") {
		t.Error("clearing history must keep achievements")
	}

	if err := (&HistoryRestoreCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Output(), "Restored 3 log(s)") {
		t.Error("expected 3 restored logs")
	}
	history, err := env.Ctx.Tracker().History(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Errorf("history has %d logs after restore, want 3", len(history))
	}
}
