package repositories

import (
	"time"

	"github.com/ecostock/ecostock/pkg/domain/entities"
)

// SalesRepository provides access to the append-only sales event log
type SalesRepository interface {
	Append(event entities.SalesEvent) error
	AppendAll(events []entities.SalesEvent) error

	// EventsSince returns events for one (store, product) pair with
	// timestamps at or after since, oldest first.
	EventsSince(storeID entities.StoreID, productID entities.ProductID, since time.Time) ([]entities.SalesEvent, error)

	// EventsByStoreSince returns all events for a store since the given
	// time, oldest first.
	EventsByStoreSince(storeID entities.StoreID, since time.Time) ([]entities.SalesEvent, error)

	// EventsByProductSince returns all events for a product across stores
	// since the given time, oldest first.
	EventsByProductSince(productID entities.ProductID, since time.Time) ([]entities.SalesEvent, error)
}
