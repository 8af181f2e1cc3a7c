package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/embervale/coreserver/internal/ability"
	"github.com/embervale/coreserver/internal/config"
	"github.com/embervale/coreserver/internal/data"
	"github.com/embervale/coreserver/internal/persistence"
	"github.com/embervale/coreserver/internal/session"
	"github.com/embervale/coreserver/internal/world"
	"github.com/embervale/coreserver/internal/zonedata"
)

const ConfigPath = "config/gameserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("COREVALE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("coreserver starting", "bind", cfg.BindAddress, "port", cfg.Port, "tick_hz", cfg.TickRateHz)

	store := openStore(ctx, cfg, logger)
	if store != nil {
		defer store.Close()
	}

	cache := persistence.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cache.Close()

	pipe := persistence.NewPipeline(store, cache, cfg.PersistenceChannelSize, logger)
	pipe.Start(ctx)

	zones := zonedata.LoadRegistry(cfg.ConfigDir)
	logger.Info("zone registry loaded", "zones", len(zones.All()))

	items := data.NewCatalog()
	abilities := ability.NewCatalog()
	w := world.New(zones, items, abilities)

	srv, err := session.New(cfg, w, store, pipe, items, logger)
	if err != nil {
		return fmt.Errorf("creating session server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting session server", "port", cfg.Port)
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("session server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer waitCancel()
	if err := pipe.Shutdown(waitCtx); err != nil {
		logger.Warn("persistence pipeline shutdown", "error", err)
	}

	return nil
}

// openStore migrates and connects the database, returning nil (not an
// error) if either step fails. A nil store runs the server in degraded
// mode: Register and Login reject every request with a "persistence
// unavailable" failure instead of the server refusing to boot at all.
func openStore(ctx context.Context, cfg config.GameServer, logger *slog.Logger) *persistence.Store {
	dsn := cfg.Database.DSN()
	if err := persistence.Migrate(ctx, dsn); err != nil {
		logger.Error("database migrations failed, starting without persistence", "err", err)
		return nil
	}
	logger.Info("database migrations applied")

	store, err := persistence.New(ctx, dsn)
	if err != nil {
		logger.Error("database connection failed, starting without persistence", "err", err)
		return nil
	}
	return store
}

// parseLogLevel converts a string log level to slog.Level, defaulting
// to info on anything unrecognized.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
