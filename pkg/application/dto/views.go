// Package dto defines the view shapes returned to the presentation layer.
package dto

import (
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

// InventoryView is one row of the network-wide inventory listing
type InventoryView struct {
	StoreID     entities.StoreID   `json:"store_id"`
	StoreName   string             `json:"store_name"`
	ProductID   entities.ProductID `json:"product_id"`
	ProductName string             `json:"product_name"`
	Category    string             `json:"category"`
	Quantity    entities.Quantity  `json:"quantity"`
	Status      string             `json:"status"`
	VelocityWk  float64            `json:"weekly_velocity"`
}

// FulfillmentPlan is the result of store selection for an order. Producing
// a plan commits nothing; the purchase step decrements stock separately.
type FulfillmentPlan struct {
	StoreID    entities.StoreID `json:"store_id"`
	StoreName  string           `json:"store_name"`
	DistanceKm float64          `json:"distance_km"`
	Reason     string           `json:"reason"`
}

// PurchaseResult reports a committed purchase
type PurchaseResult struct {
	OrderID    string           `json:"order_id"`
	StoreID    entities.StoreID `json:"store_id"`
	StoreName  string           `json:"store_name"`
	DistanceKm float64          `json:"distance_km"`
	Reason     string           `json:"reason"`
}

// ForecastView is one row of the demand forecast listing
type ForecastView struct {
	ProductID         entities.ProductID `json:"product_id"`
	ProductName       string             `json:"product_name"`
	StoreID           entities.StoreID   `json:"store_id,omitempty"`
	StoreName         string             `json:"store_name,omitempty"`
	PredictedNextWeek float64            `json:"predicted_next_week"`
	Trend             string             `json:"trend"`
}

// AffinityScore is one category score of a store's affinity vector
type AffinityScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// StockItem is an inventory line in store analytics
type StockItem struct {
	ProductID   entities.ProductID `json:"product_id"`
	ProductName string             `json:"product_name"`
	Category    string             `json:"category"`
	Quantity    entities.Quantity  `json:"quantity"`
	VelocityWk  float64            `json:"weekly_velocity"`
}

// StoreAnalytics summarizes one store for the manager dashboard
type StoreAnalytics struct {
	StoreID    entities.StoreID `json:"store_id"`
	StoreName  string           `json:"store_name"`
	Affinity   []AffinityScore  `json:"affinity"`
	HighDemand []StockItem      `json:"high_demand"`
	DeadStock  []StockItem      `json:"dead_stock"`
}

// StoreSummary is one row of the store listing
type StoreSummary struct {
	StoreID       entities.StoreID `json:"store_id"`
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Lat           float64          `json:"lat"`
	Lon           float64          `json:"lon"`
	Address       string           `json:"address"`
	TotalVelocity float64          `json:"total_velocity"`
}

// RecommendationView is one transfer recommendation as shown to managers
type RecommendationView struct {
	ID            string             `json:"id"`
	ProductID     entities.ProductID `json:"product_id"`
	ProductName   string             `json:"product_name"`
	SourceStoreID entities.StoreID   `json:"source_store_id,omitempty"`
	SourceStore   string             `json:"source_store,omitempty"`
	DestStoreID   entities.StoreID   `json:"dest_store_id"`
	DestStore     string             `json:"dest_store"`
	Quantity      entities.Quantity  `json:"quantity"`
	CO2SavedKg    decimal.Decimal    `json:"co2_saved_kg"`
	Method        string             `json:"method"`
	State         string             `json:"state"`
	Note          string             `json:"note,omitempty"`
}
