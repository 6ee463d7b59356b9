package backups

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/plop/internal/cli/clitest"
)

func TestBackupLifecycle(t *testing.T) {
	env := clitest.LoggedIn(t)
	bg := context.Background()

	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Output(), "No backups found.") {
		t.Error("expected no backups")
	}

	if err := (&BackupCreateCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	out := env.Output()
	if !strings.Contains(out, "✓ Backup created: plop-") {
		t.Errorf("create output = %q", out)
	}
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out), "✓ Backup created:"))

	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, name) || !strings.Contains(out, "1 total") {
		t.Errorf("list output = %q", out)
	}

	// Change something that the restore should roll back
	me, err := env.Ctx.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	me.Username = "Renamed"
	if err := env.Ctx.Store.UpdateUser(bg, me); err != nil {
		t.Fatal(err)
	}

	env.Input("no")
	if err := (&BackupRestoreCmd{BackupFile: name}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Output(), "Restore cancelled.") {
		t.Error("declined prompt should cancel")
	}

	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(env.Ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(env.Output(), "Database restored successfully") {
		t.Error("expected restore confirmation")
	}

	restored, err := env.Ctx.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if restored.Username != "EmailUser" {
		t.Errorf("username = %q after restore, want EmailUser", restored.Username)
	}
}

func TestBackupRestore_Missing(t *testing.T) {
	env := clitest.New(t)

	err := (&BackupRestoreCmd{BackupFile: filepath.Join(env.Dir, "nope.db"), Yes: true}).Run(env.Ctx)
	if err == nil {
		t.Error("expected error for a missing backup")
	}
}
