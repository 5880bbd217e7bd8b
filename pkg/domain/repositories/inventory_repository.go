package repositories

import "github.com/ecostock/ecostock/pkg/domain/entities"

// InventoryRepository provides access to per-store per-product stock
// records. Implementations must serialize all mutations against the same
// (store, product) record: concurrent decrements may never produce a lost
// update or a negative quantity.
type InventoryRepository interface {
	// Get returns a copy of the record, or entities.ErrRecordNotFound.
	Get(storeID entities.StoreID, productID entities.ProductID) (*entities.InventoryRecord, error)
	GetAll() ([]*entities.InventoryRecord, error)
	GetByStore(storeID entities.StoreID) ([]*entities.InventoryRecord, error)
	GetByProduct(productID entities.ProductID) ([]*entities.InventoryRecord, error)
	Load(records []*entities.InventoryRecord) error

	// Decrement atomically subtracts qty and returns the new quantity.
	// Fails with entities.ErrInsufficientStock if the record holds less
	// than qty, leaving it unchanged.
	Decrement(storeID entities.StoreID, productID entities.ProductID, qty entities.Quantity) (entities.Quantity, error)

	// Increment atomically adds qty, creating a zero-quantity record
	// first if none exists, and returns the new quantity.
	Increment(storeID entities.StoreID, productID entities.ProductID, qty entities.Quantity) (entities.Quantity, error)
}
