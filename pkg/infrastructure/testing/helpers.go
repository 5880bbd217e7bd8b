// Package testing provides shared fixtures for engine tests.
package testing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/geo"
	"github.com/ecostock/ecostock/pkg/infrastructure/repositories/memory"
)

// BuildRetailTestData builds a small three-store scenario with loaded
// repositories:
//
//   - NYC_SOHO holds 60 parkas selling ~0.2/week (dead stock) and brisk
//     t-shirt trade.
//   - NYC_BK sells parkas at ~8/week but holds only 4 (high demand, low
//     cover).
//   - MIA_BEACH is far from both and sells only t-shirts.
func BuildRetailTestData() (*memory.StoreRepository, *memory.ProductRepository, *memory.InventoryRepository, *memory.SalesRepository) {
	storeRepo := memory.NewStoreRepository()
	productRepo := memory.NewProductRepository()
	inventoryRepo := memory.NewInventoryRepository()
	salesRepo := memory.NewSalesRepository()

	stores := []*entities.Store{
		mustStore("NYC_SOHO", "SoHo Flagship", entities.Flagship,
			geo.Coordinates{Lat: 40.7233, Lon: -74.0030}, "500 Broadway, New York, NY"),
		mustStore("NYC_BK", "Brooklyn Outlet", entities.Outlet,
			geo.Coordinates{Lat: 40.6500, Lon: -73.9500}, "1000 Flatbush Ave, Brooklyn, NY"),
		mustStore("MIA_BEACH", "Miami Beach", entities.Flagship,
			geo.Coordinates{Lat: 25.7907, Lon: -80.1300}, "800 Collins Ave, Miami Beach, FL"),
	}
	if err := storeRepo.LoadStores(stores); err != nil {
		panic(fmt.Sprintf("loading test stores: %v", err))
	}

	products := []*entities.Product{
		mustProduct("PARKA", "Expedition Parka", entities.Outerwear, "M", "189.00", "1.8"),
		mustProduct("TSHIRT", "Logo Tee", entities.Tops, "M", "24.00", "0.2"),
		mustProduct("JEANS", "Slim Jeans", entities.Bottoms, "32", "79.00", "0.7"),
	}
	if err := productRepo.LoadProducts(products); err != nil {
		panic(fmt.Sprintf("loading test products: %v", err))
	}

	positions := []struct {
		store   entities.StoreID
		product entities.ProductID
		qty     entities.Quantity
		// perWeek drives four weeks of synthetic history
		perWeek float64
	}{
		{"NYC_SOHO", "PARKA", 60, 0.25},
		{"NYC_SOHO", "TSHIRT", 40, 12},
		{"NYC_SOHO", "JEANS", 25, 4},
		{"NYC_BK", "PARKA", 4, 8},
		{"NYC_BK", "TSHIRT", 30, 6},
		{"MIA_BEACH", "TSHIRT", 50, 10},
		{"MIA_BEACH", "JEANS", 20, 2},
	}

	records := make([]*entities.InventoryRecord, 0, len(positions))
	var events []entities.SalesEvent
	now := time.Now()
	for _, p := range positions {
		rec, err := entities.NewInventoryRecord(p.store, p.product, p.qty)
		if err != nil {
			panic(fmt.Sprintf("building test inventory: %v", err))
		}
		records = append(records, rec)
		events = append(events, weeklyHistory(p.store, p.product, p.perWeek, now)...)
	}
	if err := inventoryRepo.Load(records); err != nil {
		panic(fmt.Sprintf("loading test inventory: %v", err))
	}
	if err := salesRepo.AppendAll(events); err != nil {
		panic(fmt.Sprintf("loading test sales: %v", err))
	}

	return storeRepo, productRepo, inventoryRepo, salesRepo
}

// weeklyHistory synthesizes four weeks of sales averaging perWeek
// units/week, one event per week. Fractional weekly rates accumulate
// until a whole unit is due.
func weeklyHistory(store entities.StoreID, product entities.ProductID, perWeek float64, now time.Time) []entities.SalesEvent {
	var events []entities.SalesEvent
	carried := 0.0
	for week := 0; week < 4; week++ {
		carried += perWeek
		qty := int64(carried)
		carried -= float64(qty)
		if qty == 0 {
			continue
		}
		events = append(events, entities.SalesEvent{
			StoreID:   store,
			ProductID: product,
			Quantity:  entities.Quantity(qty),
			Timestamp: now.AddDate(0, 0, -7*week).Add(-12 * time.Hour),
		})
	}
	return events
}

func mustStore(id entities.StoreID, name string, storeType entities.StoreType, location geo.Coordinates, address string) *entities.Store {
	store, err := entities.NewStore(id, name, storeType, location, address)
	if err != nil {
		panic(fmt.Sprintf("building test store: %v", err))
	}
	return store
}

func mustProduct(id entities.ProductID, name string, category entities.Category, size, price, weight string) *entities.Product {
	product, err := entities.NewProduct(id, name, category, size,
		decimal.RequireFromString(price), decimal.RequireFromString(weight))
	if err != nil {
		panic(fmt.Sprintf("building test product: %v", err))
	}
	return product
}
