package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecostock/ecostock/pkg/application/services/inventory"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// Executor applies an approved recommendation to inventory. Source stock
// is revalidated at execution time: the inventory may have moved since the
// recommendation was generated.
type Executor struct {
	inventoryR repositories.InventoryRepository
	inventory  *inventory.Service
	logger     *slog.Logger
}

// NewExecutor creates a transfer executor
func NewExecutor(inventoryRepo repositories.InventoryRepository, inventorySvc *inventory.Service, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		inventoryR: inventoryRepo,
		inventory:  inventorySvc,
		logger:     logger,
	}
}

// Execute moves the recommended quantity. For StoreTransfer the source
// decrement and destination increment happen as a rollback-protected pair;
// a source that no longer holds enough stock fails with
// ErrStaleRecommendation and mutates nothing. Method handling is
// exhaustive so an unknown method can never silently move stock.
func (e *Executor) Execute(ctx context.Context, rec *entities.Recommendation) error {
	switch rec.Method {
	case entities.StoreTransfer:
		err := e.inventory.MoveStock(ctx, rec.ProductID, rec.SourceStoreID, rec.DestStoreID, rec.Quantity)
		if errors.Is(err, entities.ErrInsufficientStock) || errors.Is(err, entities.ErrRecordNotFound) {
			return fmt.Errorf("source %s no longer holds %d units of %s: %w",
				rec.SourceStoreID, rec.Quantity, rec.ProductID, entities.ErrStaleRecommendation)
		}
		return err

	case entities.RestockOrder:
		// Externally sourced; only the destination record changes.
		_, err := e.inventoryR.Increment(rec.DestStoreID, rec.ProductID, rec.Quantity)
		return err

	default:
		return fmt.Errorf("unhandled transfer method %q for recommendation %s", rec.Method, rec.ID)
	}
}
