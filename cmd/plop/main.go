package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/cli/account"
	"github.com/julianstephens/plop/internal/cli/backups"
	"github.com/julianstephens/plop/internal/cli/logs"
	"github.com/julianstephens/plop/internal/cli/settings"
	"github.com/julianstephens/plop/internal/cli/social"
	"github.com/julianstephens/plop/internal/cli/system"
	"github.com/julianstephens/plop/internal/config"
	"github.com/julianstephens/plop/internal/constants"
	apperrors "github.com/julianstephens/plop/internal/errors"
	"github.com/julianstephens/plop/internal/logger"
	"github.com/julianstephens/plop/internal/notifier"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path or PostgreSQL connection string. Connection strings given here must NOT embed a password; use the OS keyring, PLOP_DB_CONNECTION or .pgpass instead." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize plop storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Login  account.LoginCmd  `cmd:"" help:"Log in with a phone number or email."`
	Logout account.LogoutCmd `cmd:"" help:"Log out."`
	Whoami account.WhoamiCmd `cmd:"" help:"Show the signed-in user."`

	Log     logs.LogCmd     `cmd:"" help:"Record a visit and see its score."`
	History logs.HistoryCmd `cmd:"" help:"Browse, chart, clear or restore your history."`

	Achievements account.AchievementsCmd `cmd:"" help:"Show achievements and equip a nameplate."`
	Profile      account.ProfileCmd      `cmd:"" help:"Show or edit your profile."`

	Leaderboard social.LeaderboardCmd `cmd:"" help:"Rank yourself against your friends."`
	Friends     social.FriendsCmd     `cmd:"" help:"Find and add friends."`
	Inbox       social.InboxCmd       `cmd:"" help:"Answer friend requests."`

	Backup    backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	ConfigCmd system.ConfigCmd     `cmd:"" name:"config" help:"Manage the stored database connection."`
	Notify    system.NotifyCmd     `cmd:"" hidden:"" help:"Send a tray notification (used internally)."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track your visits, score them, and compete with friends"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	env, err := config.LoadEnv()
	if err != nil {
		apperrors.Fatal(err)
	}

	location, err := config.ResolveLocation(CLI.Config, env, cli.KeyringLookup)
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir, err := config.ConfigDir(location)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug || env.Debug, Level: env.LogLevel, ConfigDir: configDir}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	// Only a --config value typed on the command line must be password free
	fromFlag := CLI.Config != "" && CLI.Config != constants.DefaultConfigPath
	store, err := cli.OpenStore(location, !fromFlag)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCtx := cli.NewContext(base, store, notifier.New())
	appCtx.Timezone = env.Timezone

	selected := kctx.Selected()
	if selected == nil || selected.Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", kctx.Command(), "store", store.GetConfigPath())
	if err := kctx.Run(appCtx); err != nil {
		stop()
		store.Close()
		apperrors.Fatal(err)
	}
}
