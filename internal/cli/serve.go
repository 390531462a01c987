package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/datainsight-lab/datainsight/internal/catalog"
	"github.com/datainsight-lab/datainsight/internal/charting"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/config"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
	"github.com/datainsight-lab/datainsight/internal/core/storage/memory"
	"github.com/datainsight-lab/datainsight/internal/core/storage/postgres"
	"github.com/datainsight-lab/datainsight/internal/export"
	"github.com/datainsight-lab/datainsight/internal/ingestion"
	"github.com/datainsight-lab/datainsight/internal/insights"
	"github.com/datainsight-lab/datainsight/internal/migrations"
	"github.com/datainsight-lab/datainsight/internal/render"
	"github.com/datainsight-lab/datainsight/internal/server"
	"github.com/datainsight-lab/datainsight/internal/telemetry"
)

func (a *App) newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Configuration comes from built-in defaults, then the YAML file given with
--config, then DATAINSIGHT_* environment variables ("__" separates levels,
e.g. DATAINSIGHT_SERVER__PORT=9090).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	return cmd
}

func (a *App) serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, a.stderr)
	slog.SetDefault(logger)

	rt, err := newRuntime(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	slog.Info("[Server] Runtime ready",
		"storage", cfg.Storage.Type,
		"backends", rt.registry.Names(),
		"presets", len(cfg.PresetLoading.Presets),
		"insights", rt.insights.Enabled(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rt.sweeper.Start(gctx)
	})
	g.Go(func() error {
		return rt.server.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	slog.Info("[Server] Shutdown complete")
	return nil
}

// runtime holds every long-lived component of the HTTP service.
type runtime struct {
	server   *server.Server
	sweeper  *catalog.Sweeper
	registry *render.Registry
	insights *insights.Service
	closers  []func() error
}

func newRuntime(cfg *config.Config, logger *slog.Logger) (*runtime, error) {
	rt := &runtime{}

	repo, health, err := rt.openStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	cat := catalog.New(repo, cfg.Storage.CacheSize)
	rt.sweeper = catalog.NewSweeper(cat, cfg.Storage.Retention, cfg.Storage.SweepInterval)

	recorder, err := telemetry.NewRecorder(Version)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	rt.registry, err = charting.NewRegistry(cfg.Render)
	if err != nil {
		rt.Close()
		return nil, err
	}
	orch := render.NewOrchestrator(rt.registry, render.WithRecorder(recorder), render.WithLogger(logger))

	presets, err := chart.NewFileSystemPresetRepository("", cfg.PresetLoading.Presets)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to index presets: %w", err)
	}

	var gen insights.Generator
	if cfg.Insights.Configured() {
		gen = insights.NewGemini(insights.GeminiConfig{
			APIKey:  cfg.Insights.APIKey,
			BaseURL: cfg.Insights.BaseURL,
			Model:   cfg.Insights.Model,
		})
	} else if cfg.Insights.Enabled {
		slog.Warn("[Insights] Enabled without an API key, endpoint will answer 503")
	}
	rt.insights = insights.NewService(cat, gen, cfg.Insights.Timeout)

	rt.server = server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), health, cfg.Server.Mode)
	rt.server.Register(
		ingestion.NewService(cat, cfg.Ingestion.MaxUploadMB, cfg.Ingestion.MaxRows),
		charting.NewService(cat, presets, orch, recorder, cfg.Server.MaxConcurrency),
		export.NewService(cat),
		rt.insights,
	)
	return rt, nil
}

// openStore returns the dataset repository and, for stores that can become
// unreachable, the health checker of the /health route.
func (rt *runtime) openStore(cfg config.StorageConfig) (storage.DatasetRepository, server.HealthChecker, error) {
	if cfg.Type != "postgres" {
		slog.Info("[Storage] Using in-memory dataset store")
		return memory.New(), nil, nil
	}

	db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, err
	}
	adapter, err := postgres.NewAdapter(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	rt.closers = append(rt.closers, adapter.Close)
	return adapter, adapter, nil
}

// Close releases the store connections.
func (rt *runtime) Close() {
	for _, closeFn := range rt.closers {
		if err := closeFn(); err != nil {
			slog.Error("[Server] Failed to close resource", "error", err)
		}
	}
	rt.closers = nil
}
