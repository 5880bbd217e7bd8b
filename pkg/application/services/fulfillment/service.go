// Package fulfillment selects the optimal store for a customer order and
// commits purchases against it.
package fulfillment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ecostock/ecostock/pkg/application/dto"
	"github.com/ecostock/ecostock/pkg/application/services/inventory"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/geo"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// Service selects fulfillment stores and commits purchases. Selection is
// side-effect free so callers can preview an assignment; Purchase performs
// selection and then commits the decrement as a distinct step.
type Service struct {
	stores     repositories.StoreRepository
	products   repositories.ProductRepository
	inventoryR repositories.InventoryRepository
	inventory  *inventory.Service
	geocoder   geo.Geocoder
	logger     *slog.Logger
}

// NewService creates a fulfillment service
func NewService(
	stores repositories.StoreRepository,
	products repositories.ProductRepository,
	inventoryRepo repositories.InventoryRepository,
	inventorySvc *inventory.Service,
	geocoder geo.Geocoder,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		stores:     stores,
		products:   products,
		inventoryR: inventoryRepo,
		inventory:  inventorySvc,
		geocoder:   geocoder,
		logger:     logger,
	}
}

// SelectFulfillment picks the store that minimizes shipping distance among
// stores holding at least qty units. Ties break toward the lowest store
// ID so selection is deterministic. Never mutates inventory; fails with
// ErrNoStoreAvailable when no store qualifies.
func (s *Service) SelectFulfillment(ctx context.Context, productID entities.ProductID, qty entities.Quantity, customer geo.Coordinates) (*dto.FulfillmentPlan, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("order of %d units: %w", qty, entities.ErrInvalidQuantity)
	}
	if _, err := s.products.GetProduct(productID); err != nil {
		return nil, err
	}

	records, err := s.inventoryR.GetByProduct(productID)
	if err != nil {
		return nil, err
	}

	var (
		best     *entities.Store
		bestRec  *entities.InventoryRecord
		bestDist float64
	)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec.Quantity < qty {
			continue
		}
		store, err := s.stores.GetStore(rec.StoreID)
		if err != nil {
			return nil, err
		}
		dist := geo.Distance(customer, store.Location)
		if best == nil || dist < bestDist || (dist == bestDist && store.ID < best.ID) {
			best = store
			bestRec = rec
			bestDist = dist
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no store holds %d units of %s: %w", qty, productID, entities.ErrNoStoreAvailable)
	}

	return &dto.FulfillmentPlan{
		StoreID:    best.ID,
		StoreName:  best.Name,
		DistanceKm: bestDist,
		Reason:     s.reason(best, bestRec, bestDist, qty),
	}, nil
}

func (s *Service) reason(store *entities.Store, rec *entities.InventoryRecord, distKm float64, qty entities.Quantity) string {
	if rec.Status == entities.DeadStock {
		return fmt.Sprintf("%s is the nearest store with %d+ units (%.1f km) and clears dead stock", store.Name, qty, distKm)
	}
	return fmt.Sprintf("%s is the nearest store with %d+ units in stock (%.1f km)", store.Name, qty, distKm)
}

// Purchase geocodes the customer address, selects a fulfillment store, and
// commits the sale against it. The commit can still fail with
// ErrInsufficientStock if a concurrent purchase drained the selected store
// between selection and commit; the caller decides whether to retry.
func (s *Service) Purchase(ctx context.Context, productID entities.ProductID, qty entities.Quantity, customerAddress string) (*dto.PurchaseResult, error) {
	customer := s.geocoder.Resolve(customerAddress)

	plan, err := s.SelectFulfillment(ctx, productID, qty, customer)
	if err != nil {
		return nil, err
	}

	if _, err := s.inventory.RecordSale(ctx, plan.StoreID, productID, qty); err != nil {
		return nil, err
	}

	order, err := entities.NewOrder(uuid.New().String(), productID, qty, customer, plan.StoreID, plan.DistanceKm, plan.Reason, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase fulfilled",
		slog.String("order", order.ID),
		slog.String("product", string(productID)),
		slog.String("store", string(plan.StoreID)),
		slog.Float64("distance_km", plan.DistanceKm))

	return &dto.PurchaseResult{
		OrderID:    order.ID,
		StoreID:    plan.StoreID,
		StoreName:  plan.StoreName,
		DistanceKm: plan.DistanceKm,
		Reason:     plan.Reason,
	}, nil
}
