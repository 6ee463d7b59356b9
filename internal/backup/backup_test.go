package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/plop/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "plop.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE logs (id TEXT PRIMARY KEY, score INTEGER)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO logs (id, score) VALUES ('l1', 100), ('l2', 64)`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countLogs(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM logs").Scan(&n); err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	return n
}

// clock returns a manager clock advancing one minute per call
func clock(start time.Time) func() time.Time {
	tick := start
	return func() time.Time {
		now := tick
		tick = tick.Add(time.Minute)
		return now
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written to %s", path)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, constants.BackupFilePrefix) || !strings.HasSuffix(base, ".db") {
		t.Errorf("unexpected backup name %s", base)
	}
	if got := countLogs(t, path); got != 2 {
		t.Errorf("backup holds %d logs, want 2", got)
	}
}

func TestCreate_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create() without database succeeded")
	}
}

func TestUniqueFilenames(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	fixed := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for range 3 {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("List() = %d backups, want 3", len(backups))
	}
}

func TestRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = clock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local))

	for range constants.MaxBackups + 3 {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("List() = %d backups, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	oldestKept := time.Date(2026, 3, 1, 0, 3, 0, 0, time.Local)
	if !backups[len(backups)-1].Timestamp.Equal(oldestKept) {
		t.Errorf("oldest kept = %v, want %v", backups[len(backups)-1].Timestamp, oldestKept)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "plop-garbage.db", "plop-20260302-0800.json"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %+v, want none", backups)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = clock(time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local))

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	db, _ := sql.Open("sqlite", dbPath)
	if _, err := db.Exec("DELETE FROM logs"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	previous, err := mgr.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if previous == "" {
		t.Error("Restore() did not snapshot the current database")
	} else if got := countLogs(t, previous); got != 0 {
		t.Errorf("pre-restore snapshot holds %d logs, want 0", got)
	}
	if got := countLogs(t, dbPath); got != 2 {
		t.Errorf("restored database holds %d logs, want 2", got)
	}
}

func TestRestore_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore() of missing file succeeded")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(corrupt); err == nil {
		t.Error("Restore() of corrupted file succeeded")
	}
	if got := countLogs(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d logs", got)
	}
}

func TestJSONDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plop.json")
	if err := os.WriteFile(path, []byte(`{"poop_logs": []}`), 0600); err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(path)

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasSuffix(snapshot, ".json") {
		t.Errorf("snapshot %s should keep the .json extension", snapshot)
	}

	if err := os.WriteFile(path, []byte(`{"poop_logs": [{"id": "l1"}]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(snapshot); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"poop_logs": []}` {
		t.Errorf("restored document = %s", data)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Verify(bad); err == nil {
		t.Error("Verify() accepted malformed JSON")
	}
}
