package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/argenis972/portfolio-backend/config"
	"github.com/argenis972/portfolio-backend/internal/bootstrap"
	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/argenis972/portfolio-backend/internal/portfolio/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir string
	driver  string
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the portfolio JSON datasets into redis or postgres",
	Long: `Reads sobre.json, projetos.json, stack.json and experiencias.json from a
directory, validates them, and writes each document to the configured store.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "directory holding the JSON datasets (default: DATA_DIR)")
	rootCmd.Flags().StringVar(&driver, "driver", "", "target store: redis or postgres (default: STORE_DRIVER)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the datasets without writing them")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	if driver != "" {
		cfg.Store.Driver = driver
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := logging.WithLogger(cmd.Context(), logger)
	src := repository.NewFileSource(cfg.Store.DataDir)

	if dryRun {
		if err := bootstrap.ValidateDatasets(ctx, src); err != nil {
			return err
		}
		logger.Info("datasets válidos", zap.String("dir", cfg.Store.DataDir))
		return nil
	}

	if cfg.Store.Driver == config.DriverFile {
		return fmt.Errorf("the file store is read in place; choose --driver redis or postgres")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := bootstrap.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	dst, ok := store.Writer()
	if !ok {
		return fmt.Errorf("store %q is not writable", cfg.Store.Driver)
	}

	if err := bootstrap.Seed(ctx, src, dst); err != nil {
		return err
	}
	logger.Info("seed concluído", zap.String("driver", cfg.Store.Driver), zap.Int("datasets", len(repository.Datasets)))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
