package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/gorouter"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/httpapi"
	"github.com/goliatone/go-dashboard-ui/pkg/config"
	pkgdashboard "github.com/goliatone/go-dashboard-ui/pkg/dashboard"
)

type serveCmd struct {
	EnvFile   string `name:"env-file" type:"path" help:"Load variables from this dotenv file before reading the environment."`
	Addr      string `help:"Listen address (overrides DASHBOARD_ADDR)."`
	BasePath  string `name:"base-path" help:"Mount prefix (overrides DASHBOARD_BASE_PATH)."`
	Transport string `help:"HTTP transport: nethttp or fiber (overrides DASHBOARD_TRANSPORT)."`
	Fixtures  string `type:"existingfile" help:"YAML fixtures replacing the built-in mock data."`
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	console, err := buildConsole(cfg, logger)
	if err != nil {
		return err
	}
	defer console.Close(context.Background())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return console.Service.RunJanitor(gctx, cfg.SweepInterval)
	})

	switch cfg.Transport {
	case config.TransportFiber:
		err = serveFiber(gctx, g, cfg, console, logger)
	default:
		err = serveNetHTTP(gctx, g, cfg, console, logger)
	}
	if err != nil {
		stop()
		_ = g.Wait()
		return err
	}

	logger.Info("dashboard console listening",
		slog.String("addr", cfg.Addr),
		slog.String("base_path", console.Controller.BasePath()),
		slog.String("transport", cfg.Transport),
	)
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("dashboard console stopped")
	return nil
}

func (cmd *serveCmd) config() (config.Config, error) {
	cfg, err := config.Load(cmd.EnvFile)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}
	if cmd.BasePath != "" {
		cfg.BasePath = cmd.BasePath
	}
	if cmd.Transport != "" {
		cfg.Transport = cmd.Transport
	}
	if cmd.Fixtures != "" {
		cfg.Fixtures = cmd.Fixtures
	}
	return cfg, cfg.Validate()
}

func buildConsole(cfg config.Config, logger *slog.Logger) (*pkgdashboard.Console, error) {
	data, err := dashboard.LoadDataset(cfg.Fixtures)
	if err != nil {
		return nil, err
	}
	chartOpts := []dashboard.ChartRendererOption{}
	if cfg.ChartCacheTTL > 0 {
		chartOpts = append(chartOpts, dashboard.WithChartCache(dashboard.NewChartCache(cfg.ChartCacheTTL)))
	}
	if cfg.EChartsAssetsHost != "" {
		chartOpts = append(chartOpts, dashboard.WithChartAssetsHost(cfg.EChartsAssetsHost))
	}
	return pkgdashboard.NewConsole(pkgdashboard.ConsoleOptions{
		Service: dashboard.Options{
			Dataset:         &data,
			Telemetry:       dashboard.NewSlogTelemetry(logger),
			RefreshInterval: cfg.RefreshInterval,
			ShellTTL:        cfg.ShellTTL,
		},
		BasePath:       cfg.BasePath,
		Charts:         dashboard.NewChartRenderer(chartOpts...),
		AllowedOrigins: cfg.AllowedOrigins,
	})
}

func serveNetHTTP(ctx context.Context, g *errgroup.Group, cfg config.Config, console *pkgdashboard.Console, logger *slog.Logger) error {
	console.Handlers.Logger = logger
	server := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.NewRouter(httpapi.RouterConfig{
			Handlers:   console.Handlers,
			BasePath:   cfg.BasePath,
			ActionRate: cfg.RateLimit,
			DevMode:    cfg.Dev,
			Logger:     logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("dashboardctl: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return shutdown(cfg.ShutdownTimeout, server.Shutdown)
	})
	return nil
}

func serveFiber(ctx context.Context, g *errgroup.Group, cfg config.Config, console *pkgdashboard.Console, logger *slog.Logger) error {
	console.Handlers.Logger = logger
	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:   server.Router(),
		API:      console.Handlers,
		Events:   console.Events,
		BasePath: cfg.BasePath,
		Origins:  cfg.AllowedOrigins,
	}); err != nil {
		return fmt.Errorf("dashboardctl: register routes: %w", err)
	}
	g.Go(func() error {
		if err := server.Serve(cfg.Addr); err != nil {
			return fmt.Errorf("dashboardctl: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return shutdown(cfg.ShutdownTimeout, server.Shutdown)
	})
	return nil
}

func shutdown(timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("dashboardctl: shutdown: %w", err)
	}
	return nil
}
