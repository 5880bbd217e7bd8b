package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// StoreRepository provides in-memory store master data
type StoreRepository struct {
	mu     sync.RWMutex
	stores map[entities.StoreID]entities.Store
}

// NewStoreRepository creates a new in-memory store repository
func NewStoreRepository() *StoreRepository {
	return &StoreRepository{
		stores: make(map[entities.StoreID]entities.Store),
	}
}

// Verify interface compliance
var _ repositories.StoreRepository = (*StoreRepository)(nil)

// LoadStores loads stores into the repository
func (r *StoreRepository) LoadStores(stores []*entities.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range stores {
		r.stores[s.ID] = *s
	}
	return nil
}

// GetStore returns the store with the given ID
func (r *StoreRepository) GetStore(id entities.StoreID) (*entities.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, entities.ErrStoreNotFound)
	}
	return &s, nil
}

// GetAllStores returns all stores ordered by ID
func (r *StoreRepository) GetAllStores() ([]*entities.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stores := make([]*entities.Store, 0, len(r.stores))
	for id := range r.stores {
		s := r.stores[id]
		stores = append(stores, &s)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores, nil
}

// ProductRepository provides in-memory catalog data
type ProductRepository struct {
	mu       sync.RWMutex
	products map[entities.ProductID]entities.Product
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[entities.ProductID]entities.Product),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		r.products[p.ID] = *p
	}
	return nil
}

// GetProduct returns the product with the given ID
func (r *ProductRepository) GetProduct(id entities.ProductID) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, entities.ErrProductNotFound)
	}
	return &p, nil
}

// GetAllProducts returns all products ordered by ID
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]*entities.Product, 0, len(r.products))
	for id := range r.products {
		p := r.products[id]
		products = append(products, &p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
