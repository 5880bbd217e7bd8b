// Package seed loads the demo retail network: four stores, a clothing
// catalog, inventory positions, and enough synthetic sales history to give
// velocity, affinity, and forecasting real substrate.
package seed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/geo"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// Repositories bundles the stores the seeder populates
type Repositories struct {
	Stores    repositories.StoreRepository
	Products  repositories.ProductRepository
	Inventory repositories.InventoryRepository
	Sales     repositories.SalesRepository
}

type position struct {
	store    entities.StoreID
	product  entities.ProductID
	quantity entities.Quantity
	// weeklyVelocity drives the synthetic sales history for this record
	weeklyVelocity float64
}

// Load populates the repositories with the demo network
func Load(repos Repositories) error {
	if err := repos.Stores.LoadStores(stores()); err != nil {
		return fmt.Errorf("seeding stores: %w", err)
	}
	if err := repos.Products.LoadProducts(products()); err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}

	positions := positions()
	records := make([]*entities.InventoryRecord, 0, len(positions))
	for _, p := range positions {
		rec, err := entities.NewInventoryRecord(p.store, p.product, p.quantity)
		if err != nil {
			return fmt.Errorf("seeding inventory: %w", err)
		}
		rec.LastRestocked = time.Now().AddDate(0, 0, -30)
		records = append(records, rec)
	}
	if err := repos.Inventory.Load(records); err != nil {
		return fmt.Errorf("seeding inventory: %w", err)
	}

	if err := repos.Sales.AppendAll(history(positions)); err != nil {
		return fmt.Errorf("seeding sales history: %w", err)
	}
	return nil
}

func stores() []*entities.Store {
	mk := func(id entities.StoreID, name string, t entities.StoreType, lat, lon float64, addr string) *entities.Store {
		s, _ := entities.NewStore(id, name, t, geo.Coordinates{Lat: lat, Lon: lon}, addr)
		return s
	}
	return []*entities.Store{
		mk("STORE_A", "Store A (Manhattan)", entities.Flagship, 40.7128, -74.0060, "Lower Manhattan, New York, NY"),
		mk("STORE_B", "Store B (Brooklyn)", entities.Outlet, 40.6782, -73.9442, "Crown Heights, Brooklyn, NY"),
		mk("STORE_C", "Store C (Miami)", entities.Flagship, 25.7617, -80.1918, "Downtown Miami, FL"),
		mk("STORE_D", "Store D (San Francisco)", entities.Flagship, 37.7749, -122.4194, "SoMa, San Francisco, CA"),
	}
}

func products() []*entities.Product {
	mk := func(id entities.ProductID, name string, cat entities.Category, size string, price, weight string) *entities.Product {
		p, _ := entities.NewProduct(id, name, cat, size, decimal.RequireFromString(price), decimal.RequireFromString(weight))
		return p
	}
	return []*entities.Product{
		mk("PARKA", "Winter Parka", entities.Outerwear, "L", "120.00", "15.0"),
		mk("DENIM_JACKET", "Denim Jacket", entities.Outerwear, "M", "85.00", "10.0"),
		mk("OVERCOAT", "Wool Overcoat", entities.Outerwear, "M", "250.00", "18.0"),
		mk("TSHIRT", "Organic Cotton T-Shirt", entities.Tops, "M", "25.00", "2.0"),
		mk("HOODIE", "Vintage Hoodie", entities.Tops, "L", "55.00", "4.0"),
		mk("LINEN_SHIRT", "Linen Shirt", entities.Tops, "L", "70.00", "3.5"),
		mk("JEANS", "Slim Fit Jeans", entities.Bottoms, "32", "75.00", "8.0"),
		mk("CHINOS", "Summer Chinos", entities.Bottoms, "34", "60.00", "6.0"),
		mk("MAXI_DRESS", "Floral Maxi Dress", entities.Dresses, "M", "110.00", "5.0"),
		mk("SUMMER_DRESS", "Linen Summer Dress", entities.Dresses, "S", "85.00", "4.0"),
		mk("SNEAKERS", "Sustainable Sneakers", entities.Footwear, "10", "95.00", "9.0"),
		mk("BOOTS", "Vegan Leather Boots", entities.Footwear, "9", "130.00", "11.0"),
		mk("SCARF", "Wool Scarf", entities.Accessories, "OneSize", "35.00", "1.0"),
		mk("TOTE", "Canvas Tote Bag", entities.Accessories, "OneSize", "20.00", "0.5"),
	}
}

// positions sets up the demo scenarios: dead stock sitting at donor stores
// with receptive high-affinity destinations, a few healthy and low-stock
// lines, and an out-of-stock record.
func positions() []position {
	return []position{
		// Dead outerwear in Manhattan; Brooklyn sells outerwear fast.
		{"STORE_A", "PARKA", 60, 0.1},
		{"STORE_B", "PARKA", 5, 15.0},

		// Dead overcoats in Miami; Manhattan wants them.
		{"STORE_C", "OVERCOAT", 50, 0.1},
		{"STORE_A", "OVERCOAT", 2, 10.0},

		// Dead denim in San Francisco; Miami runs dry.
		{"STORE_D", "DENIM_JACKET", 60, 0.1},
		{"STORE_C", "DENIM_JACKET", 0, 12.0},

		// Healthy everyday lines.
		{"STORE_A", "TSHIRT", 80, 12.0},
		{"STORE_B", "TSHIRT", 70, 9.0},
		{"STORE_C", "TSHIRT", 90, 11.0},
		{"STORE_D", "TSHIRT", 60, 8.0},
		{"STORE_A", "JEANS", 40, 6.0},
		{"STORE_B", "JEANS", 35, 5.0},
		{"STORE_D", "JEANS", 45, 7.0},

		// Low stock at high velocity.
		{"STORE_B", "SNEAKERS", 4, 14.0},
		{"STORE_D", "SNEAKERS", 50, 6.0},

		// Dresses concentrate in Miami.
		{"STORE_C", "MAXI_DRESS", 30, 8.0},
		{"STORE_C", "SUMMER_DRESS", 25, 9.0},
		{"STORE_A", "SUMMER_DRESS", 40, 1.0},

		// Slow accessories.
		{"STORE_D", "SCARF", 45, 0.5},
		{"STORE_B", "SCARF", 10, 6.0},
		{"STORE_A", "TOTE", 25, 3.0},

		// Remaining lines with modest movement.
		{"STORE_A", "HOODIE", 30, 4.0},
		{"STORE_B", "HOODIE", 20, 5.0},
		{"STORE_C", "LINEN_SHIRT", 35, 6.0},
		{"STORE_D", "CHINOS", 30, 4.0},
		{"STORE_B", "BOOTS", 15, 3.0},
	}
}

// history synthesizes four weeks of sales events realizing each record's
// target weekly velocity, spread across the week so forecast buckets are
// evenly filled.
func history(positions []position) []entities.SalesEvent {
	now := time.Now()
	var events []entities.SalesEvent

	for _, p := range positions {
		weekly := int(p.weeklyVelocity + 0.5)
		if weekly == 0 {
			// Near-zero velocity still leaves a trace: one unit a month.
			if p.weeklyVelocity > 0 {
				events = append(events, entities.SalesEvent{
					StoreID:   p.store,
					ProductID: p.product,
					Quantity:  1,
					Timestamp: now.AddDate(0, 0, -21),
				})
			}
			continue
		}

		for week := 0; week < 4; week++ {
			remaining := weekly
			for day := 0; remaining > 0 && day < 7; day++ {
				qty := remaining / (7 - day)
				if qty == 0 {
					qty = 1
				}
				remaining -= qty
				events = append(events, entities.SalesEvent{
					StoreID:   p.store,
					ProductID: p.product,
					Quantity:  entities.Quantity(qty),
					Timestamp: now.AddDate(0, 0, -(week*7 + day + 1)),
				})
			}
		}
	}
	return events
}
