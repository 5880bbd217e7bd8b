// Package affinity derives per-store category preference scores ("store
// DNA") from the sales event log.
package affinity

import (
	"context"
	"time"

	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// Service computes affinity vectors on demand. Scores are raw trailing
// weekly velocity per category rather than a normalized fraction, so a
// store's strength in a category can be compared directly against another
// store's or against an absolute demand gap.
type Service struct {
	sales    repositories.SalesRepository
	products repositories.ProductRepository
	cfg      *config.Runtime
}

// NewService creates an affinity service
func NewService(sales repositories.SalesRepository, products repositories.ProductRepository, cfg *config.Runtime) *Service {
	return &Service{sales: sales, products: products, cfg: cfg}
}

// ComputeAffinity aggregates the store's trailing-window sales velocity by
// category. Every category appears in the vector; categories with no
// sales score zero.
func (s *Service) ComputeAffinity(ctx context.Context, storeID entities.StoreID) (*entities.AffinityVector, error) {
	cfg := s.cfg.Snapshot()
	windowDays := cfg.Thresholds.VelocityWindowDays
	since := time.Now().AddDate(0, 0, -windowDays)

	events, err := s.sales.EventsByStoreSince(storeID, since)
	if err != nil {
		return nil, err
	}

	weeks := float64(windowDays) / 7.0
	scores := make(map[entities.Category]float64, len(entities.Categories))
	for _, c := range entities.Categories {
		scores[c] = 0
	}

	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		product, err := s.products.GetProduct(e.ProductID)
		if err != nil {
			// Events can outlive a delisted product; they no longer
			// contribute to any category.
			continue
		}
		scores[product.Category] += float64(e.Quantity) / weeks
	}

	return &entities.AffinityVector{StoreID: storeID, Scores: scores}, nil
}
