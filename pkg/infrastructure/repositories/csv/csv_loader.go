// Package csv loads a retail scenario (stores, products, inventory, sales
// history) from CSV files, as an alternative to the built-in seed data.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/geo"
)

// Loader handles loading scenario data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadStores loads stores from a CSV file
func (l *Loader) LoadStores(filename string) ([]*entities.Store, error) {
	records, err := readCSV(filename, []string{"store_id", "name", "type", "lat", "lon", "address"})
	if err != nil {
		return nil, fmt.Errorf("stores CSV: %w", err)
	}

	var stores []*entities.Store
	for i, record := range records {
		storeType, err := parseStoreType(record[2])
		if err != nil {
			return nil, fmt.Errorf("stores CSV row %d: %w", i+2, err)
		}
		lat, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("stores CSV row %d: invalid lat %q", i+2, record[3])
		}
		lon, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("stores CSV row %d: invalid lon %q", i+2, record[4])
		}

		store, err := entities.NewStore(entities.StoreID(record[0]), record[1], storeType, geo.Coordinates{Lat: lat, Lon: lon}, record[5])
		if err != nil {
			return nil, fmt.Errorf("stores CSV row %d: %w", i+2, err)
		}
		stores = append(stores, store)
	}
	return stores, nil
}

// LoadProducts loads the catalog from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readCSV(filename, []string{"product_id", "name", "category", "size", "unit_price", "unit_weight_kg"})
	if err != nil {
		return nil, fmt.Errorf("products CSV: %w", err)
	}

	var products []*entities.Product
	for i, record := range records {
		category, err := entities.ParseCategory(record[2])
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		price, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid unit_price %q", i+2, record[4])
		}
		weight, err := decimal.NewFromString(record[5])
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid unit_weight_kg %q", i+2, record[5])
		}

		product, err := entities.NewProduct(entities.ProductID(record[0]), record[1], category, record[3], price, weight)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// LoadInventory loads inventory records from a CSV file
func (l *Loader) LoadInventory(filename string) ([]*entities.InventoryRecord, error) {
	records, err := readCSV(filename, []string{"store_id", "product_id", "quantity"})
	if err != nil {
		return nil, fmt.Errorf("inventory CSV: %w", err)
	}

	var inventory []*entities.InventoryRecord
	for i, record := range records {
		qty, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid quantity %q", i+2, record[2])
		}
		rec, err := entities.NewInventoryRecord(entities.StoreID(record[0]), entities.ProductID(record[1]), entities.Quantity(qty))
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		inventory = append(inventory, rec)
	}
	return inventory, nil
}

// LoadSales loads sales history from a CSV file
func (l *Loader) LoadSales(filename string) ([]entities.SalesEvent, error) {
	records, err := readCSV(filename, []string{"store_id", "product_id", "quantity", "timestamp"})
	if err != nil {
		return nil, fmt.Errorf("sales CSV: %w", err)
	}

	var events []entities.SalesEvent
	for i, record := range records {
		qty, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: invalid quantity %q", i+2, record[2])
		}
		ts, err := time.Parse(time.RFC3339, record[3])
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: invalid timestamp %q (expected RFC 3339)", i+2, record[3])
		}
		events = append(events, entities.SalesEvent{
			StoreID:   entities.StoreID(record[0]),
			ProductID: entities.ProductID(record[1]),
			Quantity:  entities.Quantity(qty),
			Timestamp: ts,
		})
	}
	return events, nil
}

func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have header and at least one data row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, h := range header {
		if h != expected[i] {
			return false
		}
	}
	return true
}

func parseStoreType(s string) (entities.StoreType, error) {
	switch s {
	case "Flagship":
		return entities.Flagship, nil
	case "Outlet":
		return entities.Outlet, nil
	default:
		return 0, fmt.Errorf("invalid store type %q (expected 'Flagship' or 'Outlet')", s)
	}
}
