package entities

import (
	"fmt"
	"time"
)

// Quantity represents an integer quantity of discrete retail units
type Quantity int64

// StockStatus represents the derived health of an inventory record,
// computed from quantity and trailing sales velocity.
type StockStatus int

const (
	Healthy StockStatus = iota
	LowStock
	DeadStock
	OutOfStock
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case Healthy:
		return "Healthy"
	case LowStock:
		return "LowStock"
	case DeadStock:
		return "DeadStock"
	case OutOfStock:
		return "OutOfStock"
	default:
		return "Unknown"
	}
}

// InventoryRecord represents the stock of one product at one store.
// Exactly one record exists per (store, product) pair, and quantity is
// never negative.
type InventoryRecord struct {
	StoreID       StoreID
	ProductID     ProductID
	Quantity      Quantity
	Status        StockStatus
	LastRestocked time.Time
}

// NewInventoryRecord creates a validated InventoryRecord
func NewInventoryRecord(storeID StoreID, productID ProductID, quantity Quantity) (*InventoryRecord, error) {
	if string(storeID) == "" {
		return nil, fmt.Errorf("store ID cannot be empty")
	}
	if string(productID) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}

	status := Healthy
	if quantity == 0 {
		status = OutOfStock
	}

	return &InventoryRecord{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    status,
	}, nil
}

// SalesEvent represents one sale of a product at a store. Append-only;
// the substrate for velocity, forecasting, and affinity computation.
type SalesEvent struct {
	StoreID   StoreID
	ProductID ProductID
	Quantity  Quantity
	Timestamp time.Time
}
