package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/interfaces/httpapi"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	ConfigFile  string
	Addr        string
	ScenarioDir string
	Watch       bool
	Verbose     bool
	Help        bool
}

// ServeCommand runs the HTTP API server
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a new serve command with the given configuration
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute runs the serve command until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	level := slog.LevelInfo
	if c.config.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if c.config.Addr != "" {
		cfg.Server.Addr = c.config.Addr
	}
	runtime := config.NewRuntime(cfg)

	engine := NewEngine(runtime, logger)

	if c.config.ScenarioDir != "" {
		if err := engine.LoadScenario(c.config.ScenarioDir); err != nil {
			return err
		}
		logger.Info("scenario loaded", slog.String("dir", c.config.ScenarioDir))
	} else {
		if err := engine.LoadSeed(); err != nil {
			return fmt.Errorf("loading seed data: %w", err)
		}
		logger.Info("seed data loaded")
	}

	if err := engine.InventorySvc.RefreshStatuses(ctx); err != nil {
		return fmt.Errorf("classifying inventory: %w", err)
	}

	if c.config.Watch && c.config.ConfigFile != "" {
		watcher, err := config.NewWatcher(c.config.ConfigFile, runtime, logger)
		if err != nil {
			return fmt.Errorf("watching config file: %w", err)
		}
		go watcher.Run(ctx)
	}

	api := httpapi.NewServer(httpapi.Deps{
		Fulfillment: engine.FulfillmentSvc,
		Inventory:   engine.InventorySvc,
		Forecast:    engine.ForecastSvc,
		Analytics:   engine.AnalyticsSvc,
		Generator:   engine.Generator,
		Workflow:    engine.Workflow,
		Stores:      engine.Stores,
		Products:    engine.Products,
		Recs:        engine.Recs,
		Audit:       engine.Audit,
		Metrics:     engine.Metrics,
		Registry:    engine.Registry,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func (c *ServeCommand) showHelp() {
	fmt.Println(`ecostock serve - run the inventory optimization API server

Usage:
  ecostock serve [flags]

Flags:
  -config string     Path to YAML config file (defaults apply if omitted)
  -addr string       Listen address (overrides config)
  -scenario string   Directory of CSV files to load instead of seed data
  -watch             Reload config when the file changes
  -verbose           Enable debug logging
  -help              Show this help message

Scenario directories contain stores.csv, products.csv, inventory.csv
and sales.csv. Without -scenario the built-in demo network is loaded.`)
}
