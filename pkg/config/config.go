// Package config provides threshold and coefficient configuration for the
// inventory optimization engine.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete engine configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Geo        GeoConfig        `yaml:"geo"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Forecast   ForecastConfig   `yaml:"forecast"`
	Recommend  RecommendConfig  `yaml:"recommend"`
	Emissions  EmissionsConfig  `yaml:"emissions"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	// Addr is the listen address for the JSON API
	Addr string `yaml:"addr"`
}

// GeoConfig configures address resolution
type GeoConfig struct {
	// DefaultLat/DefaultLon anchor unmatched addresses (a city center)
	DefaultLat float64 `yaml:"default_lat"`
	DefaultLon float64 `yaml:"default_lon"`
	// JitterDegrees bounds the cosmetic perturbation added to resolved
	// coordinates so distinct unmatched addresses do not collide exactly
	JitterDegrees float64 `yaml:"jitter_degrees"`
	// Regions maps address keywords to base coordinates
	Regions []RegionConfig `yaml:"regions"`
}

// RegionConfig maps address keywords to a base coordinate
type RegionConfig struct {
	Keywords []string `yaml:"keywords"`
	Lat      float64  `yaml:"lat"`
	Lon      float64  `yaml:"lon"`
}

// ThresholdsConfig configures stock status classification
type ThresholdsConfig struct {
	// DeadStockVelocity: below this many units/week a record is a dead
	// stock candidate
	DeadStockVelocity float64 `yaml:"dead_stock_velocity"`
	// DeadStockMinQty: dead stock additionally requires more than this
	// quantity on hand
	DeadStockMinQty int64 `yaml:"dead_stock_min_qty"`
	// HighDemandVelocity: above this many units/week a record counts as
	// high demand in store analytics
	HighDemandVelocity float64 `yaml:"high_demand_velocity"`
	// LowStockSupplyWeeks: below velocity × this many weeks of cover a
	// record is LowStock
	LowStockSupplyWeeks float64 `yaml:"low_stock_supply_weeks"`
	// VelocityWindowDays is the trailing window for velocity computation
	VelocityWindowDays int `yaml:"velocity_window_days"`
}

// ForecastConfig configures the demand forecaster
type ForecastConfig struct {
	// Periods is the number of trailing weekly periods averaged (≥ 2)
	Periods int `yaml:"periods"`
	// TrendThreshold is the relative week-over-week change above which a
	// trend is classified Rising or Falling
	TrendThreshold float64 `yaml:"trend_threshold"`
}

// RecommendConfig configures transfer recommendation generation
type RecommendConfig struct {
	// AffinityMarginRatio: destination affinity must exceed source
	// affinity by this factor to count as materially higher
	AffinityMarginRatio float64 `yaml:"affinity_margin_ratio"`
	// AffinityMarginAbs: alternatively, exceeding source affinity by this
	// many units/week also counts
	AffinityMarginAbs float64 `yaml:"affinity_margin_abs"`
	// MaxTransferQty caps the proposed quantity per transfer
	MaxTransferQty int64 `yaml:"max_transfer_qty"`
}

// EmissionsConfig configures the CO₂-avoided heuristic
type EmissionsConfig struct {
	// RemoteWarehouseLat/Lon locate the notional remote DC a restock
	// would otherwise ship from
	RemoteWarehouseLat float64 `yaml:"remote_warehouse_lat"`
	RemoteWarehouseLon float64 `yaml:"remote_warehouse_lon"`
	// KgCO2PerKgKm converts avoided freight (kg × km) into kg CO₂e
	KgCO2PerKgKm float64 `yaml:"kg_co2_per_kg_km"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Geo: GeoConfig{
			DefaultLat:    40.7128,
			DefaultLon:    -74.0060,
			JitterDegrees: 0.005,
			Regions: []RegionConfig{
				{Keywords: []string{"brooklyn"}, Lat: 40.650002, Lon: -73.949997},
				{Keywords: []string{"manhattan", "new york", "ny"}, Lat: 40.7736, Lon: -73.9566},
				{Keywords: []string{"queens"}, Lat: 40.7282, Lon: -73.7949},
				{Keywords: []string{"jersey"}, Lat: 40.7178, Lon: -74.0431},
				{Keywords: []string{"bronx"}, Lat: 40.8448, Lon: -73.8648},
			},
		},
		Thresholds: ThresholdsConfig{
			DeadStockVelocity:   2.0,
			DeadStockMinQty:     20,
			HighDemandVelocity:  5.0,
			LowStockSupplyWeeks: 1.0,
			VelocityWindowDays:  28,
		},
		Forecast: ForecastConfig{
			Periods:        4,
			TrendThreshold: 0.15,
		},
		Recommend: RecommendConfig{
			AffinityMarginRatio: 1.5,
			AffinityMarginAbs:   5.0,
			MaxTransferQty:      25,
		},
		Emissions: EmissionsConfig{
			// Notional central distribution center (Columbus, OH)
			RemoteWarehouseLat: 39.9612,
			RemoteWarehouseLon: -82.9988,
			KgCO2PerKgKm:       0.0002,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Geo.JitterDegrees < 0 {
		return fmt.Errorf("geo.jitter_degrees cannot be negative")
	}
	if c.Thresholds.DeadStockVelocity < 0 {
		return fmt.Errorf("thresholds.dead_stock_velocity cannot be negative")
	}
	if c.Thresholds.VelocityWindowDays <= 0 {
		return fmt.Errorf("thresholds.velocity_window_days must be positive")
	}
	if c.Forecast.Periods < 2 {
		return fmt.Errorf("forecast.periods must be at least 2")
	}
	if c.Forecast.TrendThreshold < 0 {
		return fmt.Errorf("forecast.trend_threshold cannot be negative")
	}
	if c.Recommend.MaxTransferQty <= 0 {
		return fmt.Errorf("recommend.max_transfer_qty must be positive")
	}
	if c.Recommend.AffinityMarginRatio < 1 {
		return fmt.Errorf("recommend.affinity_margin_ratio must be at least 1")
	}
	if c.Emissions.KgCO2PerKgKm < 0 {
		return fmt.Errorf("emissions.kg_co2_per_kg_km cannot be negative")
	}
	return nil
}

// Merge overlays non-zero fields from other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Geo.DefaultLat != 0 || other.Geo.DefaultLon != 0 {
		c.Geo.DefaultLat = other.Geo.DefaultLat
		c.Geo.DefaultLon = other.Geo.DefaultLon
	}
	if other.Geo.JitterDegrees != 0 {
		c.Geo.JitterDegrees = other.Geo.JitterDegrees
	}
	if len(other.Geo.Regions) > 0 {
		c.Geo.Regions = other.Geo.Regions
	}
	if other.Thresholds.DeadStockVelocity != 0 {
		c.Thresholds.DeadStockVelocity = other.Thresholds.DeadStockVelocity
	}
	if other.Thresholds.DeadStockMinQty != 0 {
		c.Thresholds.DeadStockMinQty = other.Thresholds.DeadStockMinQty
	}
	if other.Thresholds.HighDemandVelocity != 0 {
		c.Thresholds.HighDemandVelocity = other.Thresholds.HighDemandVelocity
	}
	if other.Thresholds.LowStockSupplyWeeks != 0 {
		c.Thresholds.LowStockSupplyWeeks = other.Thresholds.LowStockSupplyWeeks
	}
	if other.Thresholds.VelocityWindowDays != 0 {
		c.Thresholds.VelocityWindowDays = other.Thresholds.VelocityWindowDays
	}
	if other.Forecast.Periods != 0 {
		c.Forecast.Periods = other.Forecast.Periods
	}
	if other.Forecast.TrendThreshold != 0 {
		c.Forecast.TrendThreshold = other.Forecast.TrendThreshold
	}
	if other.Recommend.AffinityMarginRatio != 0 {
		c.Recommend.AffinityMarginRatio = other.Recommend.AffinityMarginRatio
	}
	if other.Recommend.AffinityMarginAbs != 0 {
		c.Recommend.AffinityMarginAbs = other.Recommend.AffinityMarginAbs
	}
	if other.Recommend.MaxTransferQty != 0 {
		c.Recommend.MaxTransferQty = other.Recommend.MaxTransferQty
	}
	if other.Emissions.RemoteWarehouseLat != 0 || other.Emissions.RemoteWarehouseLon != 0 {
		c.Emissions.RemoteWarehouseLat = other.Emissions.RemoteWarehouseLat
		c.Emissions.RemoteWarehouseLon = other.Emissions.RemoteWarehouseLon
	}
	if other.Emissions.KgCO2PerKgKm != 0 {
		c.Emissions.KgCO2PerKgKm = other.Emissions.KgCO2PerKgKm
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &config, nil
}

// Load returns defaults overlaid with the file at path, if any. An empty
// path yields pure defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config.Merge(fileConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
