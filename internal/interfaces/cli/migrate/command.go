package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"candlepin/internal/infrastructure/config"
	"candlepin/internal/infrastructure/database"
	"candlepin/internal/infrastructure/migration"
	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/logger"
)

const defaultScriptsPath = "./internal/infrastructure/migration/scripts"

var (
	env         string
	configPath  string
	strategy    string
	name        string
	scriptsPath string
	steps       int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", "", "Migration strategy (automigrate, goose, golang-migrate); chosen from environment and driver when empty")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a goose migration and the matching golang-migrate up/down pair.`,
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsPath, "scripts", defaultScriptsPath, "Migration scripts directory")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func initManager() (*migration.Manager, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.WithComponent("migrate")

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	manager, err := migration.NewManager(env, cfg.Database.Driver, strategy, log)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	return manager, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "strategy", manager.Strategy().Name())
	if err := manager.Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)
	if err := manager.Down(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	manager, _, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := manager.Version(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Strategy:        %s\n", manager.Strategy().Name())
	fmt.Fprintf(out, "  Current Version: %d\n", version)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	abs, err := filepath.Abs(scriptsPath)
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	files, err := migration.NewGenerator(abs, logger.WithComponent("migrate")).CreateMigration(name)
	if err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Migration '%s' created:\n", name)
	for _, f := range files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	return nil
}
