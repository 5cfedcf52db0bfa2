package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crestlinelabs/decisiond/internal/config"
	"github.com/crestlinelabs/decisiond/internal/decision"
	"github.com/crestlinelabs/decisiond/internal/dismissal"
	"github.com/crestlinelabs/decisiond/internal/logging"
	"github.com/crestlinelabs/decisiond/internal/server"
	"github.com/crestlinelabs/decisiond/internal/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the decisiond HTTP server",
	Long: `Start the decisiond daemon: load the snapshot, evaluate the engine,
and serve decisions and the attention feed over HTTP. With snapshot.watch
enabled the engine re-evaluates whenever the snapshot file changes.

Examples:
  # Serve with defaults
  decisiond serve --config config.yaml

  # Override the snapshot path
  DECISIOND_SNAPSHOT_PATH=/data/records.json decisiond serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required (set in config or DECISIOND_SNAPSHOT_PATH)")
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	engine, err := decision.NewEngine(cfg.Engine)
	if err != nil {
		return err
	}

	var kv dismissal.KV
	if cfg.Store.Path != "" {
		sqliteKV, err := dismissal.NewSQLiteKV(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer sqliteKV.Close()
		kv = sqliteKV
	} else {
		logger.Warn("no store path configured, dismissals will not survive restarts")
		kv = dismissal.NewMemoryKV()
	}
	dismissals := dismissal.NewStore(kv, "")

	watcher, err := snapshot.NewWatcher(cfg.Snapshot.Path, engine, logger)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(watcher, dismissals, cfg.Engine, logger, &server.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Snapshot.Watch {
		go func() {
			if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("snapshot watcher stopped", zap.Error(err))
			}
		}()
	}

	if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
