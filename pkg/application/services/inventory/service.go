// Package inventory computes sales velocity, derives stock status, and
// owns the stock movement primitives shared by purchases and transfers.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecostock/ecostock/pkg/application/dto"
	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// Service implements inventory views and mutations on top of the
// repositories. Status classification thresholds come from the live
// config snapshot, so threshold changes apply to the next mutation.
type Service struct {
	stores    repositories.StoreRepository
	products  repositories.ProductRepository
	inventory repositories.InventoryRepository
	sales     repositories.SalesRepository
	cfg       *config.Runtime
	logger    *slog.Logger
}

// NewService creates an inventory service
func NewService(
	stores repositories.StoreRepository,
	products repositories.ProductRepository,
	inventory repositories.InventoryRepository,
	sales repositories.SalesRepository,
	cfg *config.Runtime,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		stores:    stores,
		products:  products,
		inventory: inventory,
		sales:     sales,
		cfg:       cfg,
		logger:    logger,
	}
}

// Velocity returns the trailing-window sales velocity for a (store,
// product) pair in units per week. A pair with no sales has velocity 0.
func (s *Service) Velocity(storeID entities.StoreID, productID entities.ProductID) float64 {
	cfg := s.cfg.Snapshot()
	windowDays := cfg.Thresholds.VelocityWindowDays
	since := time.Now().AddDate(0, 0, -windowDays)

	events, err := s.sales.EventsSince(storeID, productID, since)
	if err != nil {
		s.logger.Warn("velocity lookup failed",
			slog.String("store", string(storeID)),
			slog.String("product", string(productID)),
			slog.String("error", err.Error()))
		return 0
	}

	var total entities.Quantity
	for _, e := range events {
		total += e.Quantity
	}
	weeks := float64(windowDays) / 7.0
	if weeks <= 0 {
		return 0
	}
	return float64(total) / weeks
}

// StatusFor classifies a record from its quantity and trailing velocity.
// Wired into the inventory repository so every mutation recomputes status.
func (s *Service) StatusFor(storeID entities.StoreID, productID entities.ProductID, qty entities.Quantity) entities.StockStatus {
	if qty == 0 {
		return entities.OutOfStock
	}

	cfg := s.cfg.Snapshot()
	velocity := s.Velocity(storeID, productID)

	if velocity < cfg.Thresholds.DeadStockVelocity && qty > entities.Quantity(cfg.Thresholds.DeadStockMinQty) {
		return entities.DeadStock
	}
	if float64(qty) < velocity*cfg.Thresholds.LowStockSupplyWeeks {
		return entities.LowStock
	}
	return entities.Healthy
}

// RefreshStatuses recomputes the status of every record from current
// velocity. Used after seeding historical sales, since status is normally
// recomputed only on mutation.
func (s *Service) RefreshStatuses(ctx context.Context) error {
	records, err := s.inventory.GetAll()
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec.Status = s.StatusFor(rec.StoreID, rec.ProductID, rec.Quantity)
		if err := s.inventory.Load([]*entities.InventoryRecord{rec}); err != nil {
			return err
		}
	}
	return nil
}

// ListInventory returns the network-wide inventory view
func (s *Service) ListInventory(ctx context.Context) ([]dto.InventoryView, error) {
	records, err := s.inventory.GetAll()
	if err != nil {
		return nil, err
	}

	views := make([]dto.InventoryView, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		store, err := s.stores.GetStore(rec.StoreID)
		if err != nil {
			return nil, err
		}
		product, err := s.products.GetProduct(rec.ProductID)
		if err != nil {
			return nil, err
		}
		views = append(views, dto.InventoryView{
			StoreID:     rec.StoreID,
			StoreName:   store.Name,
			ProductID:   rec.ProductID,
			ProductName: product.Name,
			Category:    product.Category.String(),
			Quantity:    rec.Quantity,
			Status:      rec.Status.String(),
			VelocityWk:  s.Velocity(rec.StoreID, rec.ProductID),
		})
	}
	return views, nil
}

// RecordSale commits a sale: decrements stock and appends the sales event
// that feeds velocity, forecasting, and affinity. Returns the remaining
// quantity.
func (s *Service) RecordSale(ctx context.Context, storeID entities.StoreID, productID entities.ProductID, qty entities.Quantity) (entities.Quantity, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("sale of %d units: %w", qty, entities.ErrInvalidQuantity)
	}

	remaining, err := s.inventory.Decrement(storeID, productID, qty)
	if err != nil {
		return remaining, err
	}

	event := entities.SalesEvent{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  qty,
		Timestamp: time.Now(),
	}
	if err := s.sales.Append(event); err != nil {
		// The decrement already happened; losing the event skews velocity
		// but does not violate stock conservation.
		s.logger.Warn("failed to append sales event",
			slog.String("store", string(storeID)),
			slog.String("product", string(productID)),
			slog.String("error", err.Error()))
	}

	return remaining, nil
}

// MoveStock moves qty units of a product between two stores. The source
// decrement and destination increment are not globally atomic, but the
// decrement is rolled back if the increment cannot be applied, so stock is
// never lost.
func (s *Service) MoveStock(ctx context.Context, productID entities.ProductID, from, to entities.StoreID, qty entities.Quantity) error {
	if qty <= 0 {
		return fmt.Errorf("transfer of %d units: %w", qty, entities.ErrInvalidQuantity)
	}
	if from == to {
		return fmt.Errorf("source and destination are both %s: %w", from, entities.ErrInvalidQuantity)
	}
	if _, err := s.stores.GetStore(to); err != nil {
		return err
	}
	if _, err := s.products.GetProduct(productID); err != nil {
		return err
	}

	if _, err := s.inventory.Decrement(from, productID, qty); err != nil {
		return err
	}

	if _, err := s.inventory.Increment(to, productID, qty); err != nil {
		// Roll the decrement back rather than lose stock.
		if _, rbErr := s.inventory.Increment(from, productID, qty); rbErr != nil {
			s.logger.Error("transfer rollback failed",
				slog.String("product", string(productID)),
				slog.String("from", string(from)),
				slog.String("error", rbErr.Error()))
		}
		return fmt.Errorf("transfer to %s failed: %w", to, err)
	}

	s.logger.Info("stock moved",
		slog.String("product", string(productID)),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.Int64("qty", int64(qty)))
	return nil
}

// DeadStockItems returns a store's dead stock lines (near-zero velocity,
// units still on hand)
func (s *Service) DeadStockItems(ctx context.Context, storeID entities.StoreID) ([]dto.StockItem, error) {
	cfg := s.cfg.Snapshot()
	return s.stockItems(ctx, storeID, func(rec *entities.InventoryRecord, velocity float64) bool {
		return velocity < cfg.Thresholds.DeadStockVelocity && rec.Quantity > 0
	})
}

// HighDemandItems returns a store's high-velocity lines
func (s *Service) HighDemandItems(ctx context.Context, storeID entities.StoreID) ([]dto.StockItem, error) {
	cfg := s.cfg.Snapshot()
	return s.stockItems(ctx, storeID, func(rec *entities.InventoryRecord, velocity float64) bool {
		return velocity > cfg.Thresholds.HighDemandVelocity
	})
}

func (s *Service) stockItems(ctx context.Context, storeID entities.StoreID, match func(*entities.InventoryRecord, float64) bool) ([]dto.StockItem, error) {
	if _, err := s.stores.GetStore(storeID); err != nil {
		return nil, err
	}
	records, err := s.inventory.GetByStore(storeID)
	if err != nil {
		return nil, err
	}

	var items []dto.StockItem
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		velocity := s.Velocity(rec.StoreID, rec.ProductID)
		if !match(rec, velocity) {
			continue
		}
		product, err := s.products.GetProduct(rec.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.StockItem{
			ProductID:   rec.ProductID,
			ProductName: product.Name,
			Category:    product.Category.String(),
			Quantity:    rec.Quantity,
			VelocityWk:  velocity,
		})
	}
	return items, nil
}
