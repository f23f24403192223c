package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/cmd/cli/commands"
	"github.com/lucabaldini/turnario/internal/config"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/postgres"
	"github.com/lucabaldini/turnario/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
	pg  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turnario",
		Short: "Turnario CLI - Manage monthly work-shift rosters",
		Long:  `A CLI tool for generating monthly shift rosters from rotation matrices, applying manual overrides, and checking rest rules and coverage.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if pg != nil {
				pg.Close()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.MaterializeCmd(app))
	rootCmd.AddCommand(commands.ShowCmd(app))
	rootCmd.AddCommand(commands.EditCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.CoverageCmd(app))
	rootCmd.AddCommand(commands.SuggestCmd(app))
	rootCmd.AddCommand(commands.ApplyCmd(app))
	rootCmd.AddCommand(commands.UndoCmd(app))
	rootCmd.AddCommand(commands.RedoCmd(app))
	rootCmd.AddCommand(commands.OperatorsCmd(app))
	rootCmd.AddCommand(commands.AddSwapCmd(app))
	rootCmd.AddCommand(commands.AddUnavailabilityCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, and the roster store. The
// AppContext is allocated before main wires the commands, so initApp
// fills it in place.
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Connect to the database and apply pending migrations
	app.Logger.Info("Connecting to database")
	pg, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pg.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = pg
	app.Logger.Info("Database initialized successfully")

	// The store lives for the whole process: in interactive mode that is
	// the session, so undo history spans every edit made in it
	historyCapacity := app.Cfg.HistoryCapacity
	if historyCapacity == 0 {
		historyCapacity = roster.DefaultHistoryCapacity
	}
	app.Store = roster.NewStore(historyCapacity)
	app.Logger.Debug("Roster store created", zap.Int("history_capacity", historyCapacity))

	return nil
}

func init() {
	app = &commands.AppContext{}
}
