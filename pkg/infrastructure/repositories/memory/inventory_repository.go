package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// StatusFunc recomputes a record's status from its quantity. The inventory
// service supplies one that folds in trailing sales velocity; a nil
// function keeps the quantity-only default (OutOfStock vs Healthy).
type StatusFunc func(storeID entities.StoreID, productID entities.ProductID, qty entities.Quantity) entities.StockStatus

type recordKey struct {
	storeID   entities.StoreID
	productID entities.ProductID
}

type lockedRecord struct {
	mu     sync.Mutex
	record entities.InventoryRecord
}

// InventoryRepository provides in-memory inventory storage. Mutations on a
// single (store, product) record are serialized by a per-record mutex; the
// outer map is guarded separately so independent records do not contend.
type InventoryRepository struct {
	mu       sync.RWMutex
	records  map[recordKey]*lockedRecord
	statusFn StatusFunc
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		records: make(map[recordKey]*lockedRecord),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// SetStatusFunc installs the status recomputation hook. Must be called
// before the repository is shared between goroutines.
func (r *InventoryRepository) SetStatusFunc(fn StatusFunc) {
	r.statusFn = fn
}

func (r *InventoryRepository) status(key recordKey, qty entities.Quantity) entities.StockStatus {
	if r.statusFn != nil {
		return r.statusFn(key.storeID, key.productID, qty)
	}
	if qty == 0 {
		return entities.OutOfStock
	}
	return entities.Healthy
}

// Load replaces or inserts the given records
func (r *InventoryRepository) Load(records []*entities.InventoryRecord) error {
	for _, rec := range records {
		if rec.Quantity < 0 {
			return fmt.Errorf("record %s/%s: quantity cannot be negative, got %d", rec.StoreID, rec.ProductID, rec.Quantity)
		}
		key := recordKey{rec.StoreID, rec.ProductID}
		r.mu.Lock()
		r.records[key] = &lockedRecord{record: *rec}
		r.mu.Unlock()
	}
	return nil
}

func (r *InventoryRepository) lookup(key recordKey) (*lockedRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lr, ok := r.records[key]
	return lr, ok
}

// Get returns a copy of the record for a (store, product) pair
func (r *InventoryRepository) Get(storeID entities.StoreID, productID entities.ProductID) (*entities.InventoryRecord, error) {
	lr, ok := r.lookup(recordKey{storeID, productID})
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", storeID, productID, entities.ErrRecordNotFound)
	}
	lr.mu.Lock()
	defer lr.mu.Unlock()
	rec := lr.record
	return &rec, nil
}

// GetAll returns copies of every record, ordered by store then product
func (r *InventoryRepository) GetAll() ([]*entities.InventoryRecord, error) {
	return r.collect(func(recordKey) bool { return true })
}

// GetByStore returns copies of every record held by one store
func (r *InventoryRepository) GetByStore(storeID entities.StoreID) ([]*entities.InventoryRecord, error) {
	return r.collect(func(k recordKey) bool { return k.storeID == storeID })
}

// GetByProduct returns copies of every record for one product
func (r *InventoryRepository) GetByProduct(productID entities.ProductID) ([]*entities.InventoryRecord, error) {
	return r.collect(func(k recordKey) bool { return k.productID == productID })
}

func (r *InventoryRepository) collect(match func(recordKey) bool) ([]*entities.InventoryRecord, error) {
	r.mu.RLock()
	locked := make([]*lockedRecord, 0, len(r.records))
	for key, lr := range r.records {
		if match(key) {
			locked = append(locked, lr)
		}
	}
	r.mu.RUnlock()

	records := make([]*entities.InventoryRecord, 0, len(locked))
	for _, lr := range locked {
		lr.mu.Lock()
		rec := lr.record
		lr.mu.Unlock()
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].StoreID != records[j].StoreID {
			return records[i].StoreID < records[j].StoreID
		}
		return records[i].ProductID < records[j].ProductID
	})
	return records, nil
}

// Decrement atomically subtracts qty from a record, failing with
// ErrInsufficientStock when the record holds less than qty
func (r *InventoryRepository) Decrement(storeID entities.StoreID, productID entities.ProductID, qty entities.Quantity) (entities.Quantity, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("decrement of %d: %w", qty, entities.ErrInvalidQuantity)
	}
	key := recordKey{storeID, productID}
	lr, ok := r.lookup(key)
	if !ok {
		return 0, fmt.Errorf("%s/%s: %w", storeID, productID, entities.ErrRecordNotFound)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	if lr.record.Quantity < qty {
		return lr.record.Quantity, fmt.Errorf("%s/%s has %d, need %d: %w",
			storeID, productID, lr.record.Quantity, qty, entities.ErrInsufficientStock)
	}
	lr.record.Quantity -= qty
	lr.record.Status = r.status(key, lr.record.Quantity)
	return lr.record.Quantity, nil
}

// Increment atomically adds qty to a record, creating a zero-quantity
// record first if none exists
func (r *InventoryRepository) Increment(storeID entities.StoreID, productID entities.ProductID, qty entities.Quantity) (entities.Quantity, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("increment of %d: %w", qty, entities.ErrInvalidQuantity)
	}
	key := recordKey{storeID, productID}

	r.mu.Lock()
	lr, ok := r.records[key]
	if !ok {
		lr = &lockedRecord{record: entities.InventoryRecord{
			StoreID:   storeID,
			ProductID: productID,
			Quantity:  0,
			Status:    entities.OutOfStock,
		}}
		r.records[key] = lr
	}
	r.mu.Unlock()

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.record.Quantity += qty
	lr.record.Status = r.status(key, lr.record.Quantity)
	return lr.record.Quantity, nil
}
