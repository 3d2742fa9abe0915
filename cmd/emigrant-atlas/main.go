// Package main provides the CLI entrypoint for emigrant-atlas.
//
// emigrant-atlas reconciles the free-text destination labels of emigrant
// statistics against a world reference geometry:
//   - Normalizes labels and translates known aliases
//   - Redirects territories without their own shape through fallbacks
//   - Auto-corrects near misses by edit distance
//   - Reports per-year totals per country, with audit counters
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"emigrant-atlas/internal/config"
)

// app holds the state shared by every command of one invocation.
type app struct {
	// Global flags
	configPath  string
	geojson     string
	data        string
	tables      string
	maxDistance int
	workers     int
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
	// newLogger builds the logger; tests replace it.
	newLogger func(verbose bool) (*zap.Logger, error)
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

func newRootCmd() *cobra.Command {
	a := &app{newLogger: productionLogger}

	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "emigrant-atlas",
		Short: "Reconcile emigrant destination labels with a world map",
		Long: `emigrant-atlas maps the destination labels of emigrant statistics onto
the countries of a GeoJSON reference geometry.

Each label goes through exact matching (after alias translation), the
fallback table, and finally a bounded fuzzy match. Labels that survive all
three are reported, never guessed.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&a.geojson, "geojson", "", "reference GeoJSON FeatureCollection")
	pf.StringVar(&a.data, "data", "", "data document (JSON, CSV or XLSX)")
	pf.StringVar(&a.tables, "tables", "", "alias/fallback tables YAML (default: built-in)")
	pf.IntVar(&a.maxDistance, "max-distance", 0, "largest accepted edit distance for fuzzy matches")
	pf.IntVar(&a.workers, "workers", 0, "parallel passes for --all-years (0: no limit)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.resolveCmd(),
		a.yearsCmd(),
		a.tablesCmd(),
		a.registryCmd(),
	)

	return root
}

// setup loads .env, the configuration and flag overrides, then the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("geojson") {
		cfg.Reference.GeoJSON = a.geojson
	}

	if flags.Changed("data") {
		cfg.Data.Path = a.data
	}

	if flags.Changed("tables") {
		cfg.Tables.Path = a.tables
	}

	if flags.Changed("max-distance") {
		d := a.maxDistance
		cfg.Tables.MaxDistance = &d
	}

	if flags.Changed("workers") {
		cfg.Concurrency.Workers = a.workers
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := a.newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("run_id", uuid.NewString()))

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
