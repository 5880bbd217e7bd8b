package memory

import (
	"sync"
	"time"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// SalesRepository provides an in-memory append-only sales event log.
// Events are kept in append order; callers are expected to append in
// roughly chronological order, and filters preserve that order.
type SalesRepository struct {
	mu     sync.RWMutex
	events []entities.SalesEvent
}

// NewSalesRepository creates a new in-memory sales repository
func NewSalesRepository() *SalesRepository {
	return &SalesRepository{}
}

// Verify interface compliance
var _ repositories.SalesRepository = (*SalesRepository)(nil)

// Append records a single sales event
func (r *SalesRepository) Append(event entities.SalesEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// AppendAll records a batch of sales events
func (r *SalesRepository) AppendAll(events []entities.SalesEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

// EventsSince returns events for one (store, product) pair since the given time
func (r *SalesRepository) EventsSince(storeID entities.StoreID, productID entities.ProductID, since time.Time) ([]entities.SalesEvent, error) {
	return r.filter(func(e entities.SalesEvent) bool {
		return e.StoreID == storeID && e.ProductID == productID && !e.Timestamp.Before(since)
	}), nil
}

// EventsByStoreSince returns all events for a store since the given time
func (r *SalesRepository) EventsByStoreSince(storeID entities.StoreID, since time.Time) ([]entities.SalesEvent, error) {
	return r.filter(func(e entities.SalesEvent) bool {
		return e.StoreID == storeID && !e.Timestamp.Before(since)
	}), nil
}

// EventsByProductSince returns all events for a product since the given time
func (r *SalesRepository) EventsByProductSince(productID entities.ProductID, since time.Time) ([]entities.SalesEvent, error) {
	return r.filter(func(e entities.SalesEvent) bool {
		return e.ProductID == productID && !e.Timestamp.Before(since)
	}), nil
}

func (r *SalesRepository) filter(match func(entities.SalesEvent) bool) []entities.SalesEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.SalesEvent
	for _, e := range r.events {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}
