package commands

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ecostock/ecostock/pkg/application/services/affinity"
	"github.com/ecostock/ecostock/pkg/application/services/analytics"
	"github.com/ecostock/ecostock/pkg/application/services/forecast"
	"github.com/ecostock/ecostock/pkg/application/services/fulfillment"
	"github.com/ecostock/ecostock/pkg/application/services/inventory"
	"github.com/ecostock/ecostock/pkg/application/services/recommendation"
	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/domain/geo"
	"github.com/ecostock/ecostock/pkg/infrastructure/events"
	"github.com/ecostock/ecostock/pkg/infrastructure/metrics"
	"github.com/ecostock/ecostock/pkg/infrastructure/repositories/csv"
	"github.com/ecostock/ecostock/pkg/infrastructure/repositories/memory"
	"github.com/ecostock/ecostock/pkg/infrastructure/seed"
)

// Engine bundles the wired repositories and services behind the CLI and
// the HTTP API.
type Engine struct {
	Runtime *config.Runtime

	Stores    *memory.StoreRepository
	Products  *memory.ProductRepository
	Inventory *memory.InventoryRepository
	Sales     *memory.SalesRepository
	Recs      *memory.RecommendationRepository

	InventorySvc   *inventory.Service
	ForecastSvc    *forecast.Service
	AffinitySvc    *affinity.Service
	FulfillmentSvc *fulfillment.Service
	AnalyticsSvc   *analytics.Service
	Generator      *recommendation.Generator
	Workflow       *recommendation.Workflow

	Audit    events.Store
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// NewEngine wires repositories and services from the given config runtime
func NewEngine(runtime *config.Runtime, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	stores := memory.NewStoreRepository()
	products := memory.NewProductRepository()
	inventoryRepo := memory.NewInventoryRepository()
	sales := memory.NewSalesRepository()
	recs := memory.NewRecommendationRepository()

	inventorySvc := inventory.NewService(stores, products, inventoryRepo, sales, runtime, logger)
	// Mutations reclassify the record under its lock so stored statuses
	// never trail the quantity they describe.
	inventoryRepo.SetStatusFunc(inventorySvc.StatusFor)

	forecastSvc := forecast.NewService(sales, runtime)
	affinitySvc := affinity.NewService(sales, products, runtime)

	geocoder := geocoderFromConfig(runtime.Snapshot())
	fulfillmentSvc := fulfillment.NewService(stores, products, inventoryRepo, inventorySvc, geocoder, logger)
	analyticsSvc := analytics.NewService(stores, inventoryRepo, affinitySvc, inventorySvc)

	audit := events.NewInMemoryStore()
	generator := recommendation.NewGenerator(stores, products, inventoryRepo, recs, inventorySvc, affinitySvc, forecastSvc, audit, runtime, logger)
	executor := recommendation.NewExecutor(inventoryRepo, inventorySvc, logger)
	workflow := recommendation.NewWorkflow(recs, executor, audit, logger)

	registry := prometheus.NewRegistry()

	return &Engine{
		Runtime:        runtime,
		Stores:         stores,
		Products:       products,
		Inventory:      inventoryRepo,
		Sales:          sales,
		Recs:           recs,
		InventorySvc:   inventorySvc,
		ForecastSvc:    forecastSvc,
		AffinitySvc:    affinitySvc,
		FulfillmentSvc: fulfillmentSvc,
		AnalyticsSvc:   analyticsSvc,
		Generator:      generator,
		Workflow:       workflow,
		Audit:          audit,
		Metrics:        metrics.New(registry),
		Registry:       registry,
		Logger:         logger,
	}
}

// geocoderFromConfig builds the keyword geocoder from the geo section
func geocoderFromConfig(cfg *config.Config) geo.Geocoder {
	regions := make([]geo.Region, 0, len(cfg.Geo.Regions))
	for _, r := range cfg.Geo.Regions {
		regions = append(regions, geo.Region{
			Keywords: r.Keywords,
			Coord:    geo.Coordinates{Lat: r.Lat, Lon: r.Lon},
		})
	}
	defaultCoord := geo.Coordinates{Lat: cfg.Geo.DefaultLat, Lon: cfg.Geo.DefaultLon}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return geo.NewKeywordGeocoder(regions, defaultCoord, cfg.Geo.JitterDegrees, rng)
}

// LoadSeed fills the repositories with the built-in demo network
func (e *Engine) LoadSeed() error {
	return seed.Load(seed.Repositories{
		Stores:    e.Stores,
		Products:  e.Products,
		Inventory: e.Inventory,
		Sales:     e.Sales,
	})
}

// LoadScenario fills the repositories from a directory of CSV files
// (stores.csv, products.csv, inventory.csv, sales.csv)
func (e *Engine) LoadScenario(dir string) error {
	loader := csv.NewLoader()

	stores, err := loader.LoadStores(filepath.Join(dir, "stores.csv"))
	if err != nil {
		return fmt.Errorf("error loading stores: %w", err)
	}
	if err := e.Stores.LoadStores(stores); err != nil {
		return fmt.Errorf("failed to load stores into repository: %w", err)
	}

	products, err := loader.LoadProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return fmt.Errorf("error loading products: %w", err)
	}
	if err := e.Products.LoadProducts(products); err != nil {
		return fmt.Errorf("failed to load products into repository: %w", err)
	}

	records, err := loader.LoadInventory(filepath.Join(dir, "inventory.csv"))
	if err != nil {
		return fmt.Errorf("error loading inventory: %w", err)
	}
	if err := e.Inventory.Load(records); err != nil {
		return fmt.Errorf("failed to load inventory into repository: %w", err)
	}

	events, err := loader.LoadSales(filepath.Join(dir, "sales.csv"))
	if err != nil {
		return fmt.Errorf("error loading sales: %w", err)
	}
	if err := e.Sales.AppendAll(events); err != nil {
		return fmt.Errorf("failed to load sales into repository: %w", err)
	}

	return nil
}
