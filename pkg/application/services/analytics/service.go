// Package analytics assembles per-store dashboards from the affinity and
// inventory services.
package analytics

import (
	"context"
	"sort"

	"github.com/ecostock/ecostock/pkg/application/dto"
	"github.com/ecostock/ecostock/pkg/application/services/affinity"
	"github.com/ecostock/ecostock/pkg/application/services/inventory"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// Service produces store summaries and analytics views
type Service struct {
	stores    repositories.StoreRepository
	inventryR repositories.InventoryRepository
	affinity  *affinity.Service
	inventory *inventory.Service
}

// NewService creates an analytics service
func NewService(stores repositories.StoreRepository, inventoryRepo repositories.InventoryRepository, affinitySvc *affinity.Service, inventorySvc *inventory.Service) *Service {
	return &Service{
		stores:    stores,
		inventryR: inventoryRepo,
		affinity:  affinitySvc,
		inventory: inventorySvc,
	}
}

// StoreAnalytics returns a store's affinity vector plus its high-demand
// and dead-stock inventory lines
func (s *Service) StoreAnalytics(ctx context.Context, storeID entities.StoreID) (*dto.StoreAnalytics, error) {
	store, err := s.stores.GetStore(storeID)
	if err != nil {
		return nil, err
	}

	vector, err := s.affinity.ComputeAffinity(ctx, storeID)
	if err != nil {
		return nil, err
	}
	scores := make([]dto.AffinityScore, 0, len(vector.Scores))
	for _, c := range entities.Categories {
		scores = append(scores, dto.AffinityScore{Category: c.String(), Score: vector.Score(c)})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	highDemand, err := s.inventory.HighDemandItems(ctx, storeID)
	if err != nil {
		return nil, err
	}
	deadStock, err := s.inventory.DeadStockItems(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return &dto.StoreAnalytics{
		StoreID:    store.ID,
		StoreName:  store.Name,
		Affinity:   scores,
		HighDemand: highDemand,
		DeadStock:  deadStock,
	}, nil
}

// StoreSummaries returns every store with its total sales velocity
func (s *Service) StoreSummaries(ctx context.Context) ([]dto.StoreSummary, error) {
	stores, err := s.stores.GetAllStores()
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.StoreSummary, 0, len(stores))
	for _, store := range stores {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := s.inventryR.GetByStore(store.ID)
		if err != nil {
			return nil, err
		}
		var total float64
		for _, rec := range records {
			total += s.inventory.Velocity(rec.StoreID, rec.ProductID)
		}
		summaries = append(summaries, dto.StoreSummary{
			StoreID:       store.ID,
			Name:          store.Name,
			Type:          store.Type.String(),
			Lat:           store.Location.Lat,
			Lon:           store.Location.Lon,
			Address:       store.Address,
			TotalVelocity: total,
		})
	}
	return summaries, nil
}
