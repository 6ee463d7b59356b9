package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/backup"
	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/postgres"
	"github.com/julianstephens/plop/internal/storage/sqlite"
	"github.com/julianstephens/plop/internal/utils"
	"github.com/julianstephens/plop/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// needsDB checks are skipped when the database cannot be loaded
	needsDB bool
	// warnOnly checks never fail the run
	warnOnly bool
}

var doctorChecks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Clock/timezone", run: checkClock},
	{name: "User integrity", run: checkUsers, needsDB: true},
	{name: "Log integrity", run: checkLogs, needsDB: true},
	{name: "Inbox integrity", run: checkNotifications, needsDB: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'plop migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found, consider creating one with 'plop backup create'")
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone setting %q", settings.Timezone)
	}
	if settings.WeeklyWindow <= 0 || settings.ChartWindow <= 0 {
		return fmt.Errorf("windows must be positive (weekly=%d, chart=%d)", settings.WeeklyWindow, settings.ChartWindow)
	}
	if settings.CurrentUserID != "" {
		if _, err := ctx.Store.GetUser(ctx.Context(), settings.CurrentUserID); err != nil {
			return fmt.Errorf("signed-in user %s: %w", settings.CurrentUserID, err)
		}
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

func checkUsers(ctx *cli.Context) error {
	users, err := ctx.Store.GetAllUsers(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}
	result := validation.New().ValidateUsers(users)
	return result.Err()
}

func checkLogs(ctx *cli.Context) error {
	logs, err := ctx.Store.GetAllLogs(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	result := validation.New().ValidateLogs(logs)
	return result.Err()
}

func checkNotifications(ctx *cli.Context) error {
	notifications, err := ctx.Store.GetAllNotifications(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}
	result := validation.New().ValidateNotifications(notifications)
	return result.Err()
}
