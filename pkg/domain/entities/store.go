package entities

import (
	"fmt"

	"github.com/ecostock/ecostock/pkg/domain/geo"
)

// StoreID represents a unique store identifier
type StoreID string

// StoreType represents the retail format of a store
type StoreType int

const (
	Flagship StoreType = iota
	Outlet
)

// String method for StoreType enum
func (t StoreType) String() string {
	switch t {
	case Flagship:
		return "Flagship"
	case Outlet:
		return "Outlet"
	default:
		return "Unknown"
	}
}

// Store represents a retail location holding inventory. Identity and
// location are immutable after creation; only display metadata may change.
type Store struct {
	ID       StoreID
	Name     string
	Type     StoreType
	Location geo.Coordinates
	Address  string
}

// NewStore creates a validated Store
func NewStore(id StoreID, name string, storeType StoreType, location geo.Coordinates, address string) (*Store, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("store ID cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("store name cannot be empty")
	}
	if location.Lat < -90 || location.Lat > 90 {
		return nil, fmt.Errorf("latitude out of range: %f", location.Lat)
	}
	if location.Lon < -180 || location.Lon > 180 {
		return nil, fmt.Errorf("longitude out of range: %f", location.Lon)
	}

	return &Store{
		ID:       id,
		Name:     name,
		Type:     storeType,
		Location: location,
		Address:  address,
	}, nil
}
