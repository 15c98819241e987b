package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ownerUsecases "candlepin/internal/application/owner/usecases"
	poolUsecases "candlepin/internal/application/pool/usecases"
	"candlepin/internal/domain/owner"
	"candlepin/internal/infrastructure/config"
	"candlepin/internal/infrastructure/database"
	"candlepin/internal/infrastructure/repository"
	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/logger"
)

var (
	env        string
	configPath string
	file       string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load owners, products and pools from a YAML file",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Fixture file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.WithComponent("seed")

	fh, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer fh.Close()

	fixtures, err := ParseFixtures(fh)
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	defaultMode, err := owner.ParseContentAccessMode(cfg.ContentAccess.DefaultMode)
	if err != nil {
		return fmt.Errorf("invalid content_access.default_mode: %w", err)
	}

	db := database.Get()
	ownerRepo := repository.NewOwnerRepository(db, log)
	productRepo := repository.NewProductRepository(db, log)
	poolRepo := repository.NewPoolRepository(db, log)

	seeder := NewSeeder(
		ownerUsecases.NewCreateOwnerUseCase(ownerRepo, nil, defaultMode, log),
		poolUsecases.NewCreateProductUseCase(ownerRepo, productRepo, log),
		poolUsecases.NewCreatePoolUseCase(ownerRepo, productRepo, poolRepo, log),
		log,
	)

	res, err := seeder.Apply(context.Background(), fixtures)
	if err != nil {
		return err
	}

	log.Infow("seed completed",
		"owners", res.Owners,
		"products", res.Products,
		"pools", res.Pools,
		"skipped_owners", res.Skipped,
	)
	return nil
}
