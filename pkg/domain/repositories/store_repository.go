package repositories

import "github.com/ecostock/ecostock/pkg/domain/entities"

// StoreRepository provides access to store master data
type StoreRepository interface {
	GetStore(id entities.StoreID) (*entities.Store, error)
	GetAllStores() ([]*entities.Store, error)
	LoadStores(stores []*entities.Store) error
}

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	GetProduct(id entities.ProductID) (*entities.Product, error)
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
}
