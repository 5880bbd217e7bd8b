package entities

import (
	"fmt"
	"time"

	"github.com/ecostock/ecostock/pkg/domain/geo"
)

// Order represents a fulfilled customer purchase. Immutable once created;
// a purchase that cannot be fulfilled produces no Order at all.
type Order struct {
	ID               string
	ProductID        ProductID
	Quantity         Quantity
	CustomerLocation geo.Coordinates
	AssignedStoreID  StoreID
	DistanceKm       float64
	Reason           string
	PlacedAt         time.Time
}

// NewOrder creates a validated Order
func NewOrder(id string, productID ProductID, quantity Quantity, customer geo.Coordinates, store StoreID, distanceKm float64, reason string, placedAt time.Time) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order ID cannot be empty")
	}
	if string(productID) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if string(store) == "" {
		return nil, fmt.Errorf("assigned store cannot be empty")
	}
	if distanceKm < 0 {
		return nil, fmt.Errorf("distance cannot be negative, got %f", distanceKm)
	}

	return &Order{
		ID:               id,
		ProductID:        productID,
		Quantity:         quantity,
		CustomerLocation: customer,
		AssignedStoreID:  store,
		DistanceKm:       distanceKm,
		Reason:           reason,
		PlacedAt:         placedAt,
	}, nil
}
