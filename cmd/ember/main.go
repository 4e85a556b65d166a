package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/emberhabits/ember/internal/app"
	"github.com/emberhabits/ember/internal/auth"
	"github.com/emberhabits/ember/internal/cli"
	"github.com/emberhabits/ember/internal/cli/system"
	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/errors"
	"github.com/emberhabits/ember/internal/kvstore"
	"github.com/emberhabits/ember/internal/logger"
	"github.com/emberhabits/ember/internal/reminder"
	"github.com/emberhabits/ember/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string" default:"~/.config/ember/ember.db"`

	Init     system.InitCmd    `cmd:"" help:"Initialize ember storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Account  cli.AccountCmd    `cmd:"" help:"Manage your account."`
	Habit    cli.HabitCmd      `cmd:"" help:"Manage habits."`
	Log      cli.LogCmd        `cmd:"" help:"Record today's completions."`
	Stats    cli.StatsCmd      `cmd:"" help:"Show your streak and completion history."`
	Reminder cli.ReminderCmd   `cmd:"" help:"Manage the daily reminder."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a database connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage database credentials."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Deliver the daily reminder (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ember"),
		kong.Description("Daily habit tracker with streaks, heatmaps and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := expandHome(CLI.Config)

	var store storage.Provider
	if storage.IsPostgresURL(config) {
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
			fmt.Fprintf(os.Stderr, "       Use one of these secure alternatives:\n")
			fmt.Fprintf(os.Stderr, "       1. OS keyring:    ember keyring set \"postgresql://user@host:5432/ember\"\n")
			fmt.Fprintf(os.Stderr, "       2. Environment:   export %s=\"postgresql://user@host:5432/ember\"\n", storage.ConnectionEnvVar)
			fmt.Fprintf(os.Stderr, "       3. .pgpass file:  Use a connection string without a password\n")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(storage.ResolveConnectionString(config))
	} else {
		store = storage.NewSQLiteStore(config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: store.GetConfigPath()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	kv, err := kvstore.Open(filepath.Join(store.GetConfigPath(), "settings.json"))
	if err != nil {
		errors.Fatal(err)
	}

	svc := app.New(store, kv, auth.NewLocal(store), reminder.NewTrayScheduler())
	appCtx := &cli.Context{
		Store:   store,
		KV:      kv,
		Service: svc,
		Config:  config,
	}

	// Load the store before running the command; init handles its own setup.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
