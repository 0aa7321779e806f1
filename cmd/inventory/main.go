package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/demo"
	"github.com/mamadbah2/inventory/internal/inventory"
	"github.com/mamadbah2/inventory/internal/repository/jsonfile"
	"github.com/mamadbah2/inventory/internal/repository/mongodb"
	"github.com/mamadbah2/inventory/pkg/logger"
)

var envFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "inventory",
		Short:        "Track item stock levels in a JSON file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := demo.Run(cmd.Context(), a.store, a.repo, cmd.OutOrStdout()); err != nil {
				a.logger.Error("demo failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "optional .env file to load before reading the environment")

	root.AddCommand(newServeCmd(), newExecCmd())
	return root
}

// app bundles the dependencies every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *inventory.Store
	repo   inventory.Repository
	mongo  *mongodb.Repository
}

func newApp(ctx context.Context) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	baseLogger, err := logger.New(logger.Options{Path: cfg.Logging.File, Level: zap.InfoLevel, Console: cfg.Logging.Console})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: baseLogger,
		store:  inventory.NewStore(baseLogger.Named("inventory")),
	}

	switch cfg.Storage.Backend {
	case config.BackendMongoDB:
		repo, err := mongodb.NewRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
		if err != nil {
			_ = baseLogger.Sync()
			return nil, err
		}
		a.mongo = repo
		a.repo = repo
	default:
		a.repo = jsonfile.NewRepository(cfg.Storage.File, baseLogger.Named("repo.jsonfile"))
	}

	return a, nil
}

// Close releases the database connection and flushes the log.
func (a *app) Close() {
	if a.mongo != nil {
		if err := a.mongo.Close(context.Background()); err != nil {
			a.logger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
