// Package forecast projects near-term demand from historical sales
// velocity using a trailing moving average over weekly periods.
package forecast

import (
	"context"
	"math"
	"time"

	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// Service computes demand forecasts from the sales event log
type Service struct {
	sales repositories.SalesRepository
	cfg   *config.Runtime
}

// NewService creates a forecast service
func NewService(sales repositories.SalesRepository, cfg *config.Runtime) *Service {
	return &Service{sales: sales, cfg: cfg}
}

// Forecast projects next-week demand for a product at one store. Zero
// history yields a zero projection with a Stable trend; the call never
// fails on missing data.
func (s *Service) Forecast(ctx context.Context, productID entities.ProductID, storeID entities.StoreID) (*entities.ForecastEntry, error) {
	events, err := s.sales.EventsSince(storeID, productID, s.windowStart())
	if err != nil {
		return nil, err
	}
	predicted, trend := s.project(events)
	return &entities.ForecastEntry{
		ProductID:         productID,
		StoreID:           storeID,
		PredictedNextWeek: predicted,
		Trend:             trend,
	}, nil
}

// ForecastNetwork projects next-week demand for a product aggregated over
// every store
func (s *Service) ForecastNetwork(ctx context.Context, productID entities.ProductID) (*entities.ForecastEntry, error) {
	events, err := s.sales.EventsByProductSince(productID, s.windowStart())
	if err != nil {
		return nil, err
	}
	predicted, trend := s.project(events)
	return &entities.ForecastEntry{
		ProductID:         productID,
		PredictedNextWeek: predicted,
		Trend:             trend,
	}, nil
}

// DemandGap returns forecasted next-week demand minus current stock for a
// product at a store; non-positive means stock already covers forecasted
// demand.
func (s *Service) DemandGap(ctx context.Context, productID entities.ProductID, storeID entities.StoreID, currentQty entities.Quantity) (float64, error) {
	entry, err := s.Forecast(ctx, productID, storeID)
	if err != nil {
		return 0, err
	}
	return entry.PredictedNextWeek - float64(currentQty), nil
}

func (s *Service) windowStart() time.Time {
	periods := s.cfg.Snapshot().Forecast.Periods
	return time.Now().AddDate(0, 0, -7*periods)
}

// project buckets events into trailing weekly periods, projects the next
// period as the window mean, and classifies the trend from the most recent
// week against the one before it.
func (s *Service) project(events []entities.SalesEvent) (float64, entities.Trend) {
	cfg := s.cfg.Snapshot()
	periods := cfg.Forecast.Periods
	now := time.Now()

	// buckets[0] is the most recent week.
	buckets := make([]float64, periods)
	for _, e := range events {
		age := now.Sub(e.Timestamp)
		if age < 0 {
			age = 0
		}
		idx := int(age.Hours() / (24 * 7))
		if idx >= periods {
			continue
		}
		buckets[idx] += float64(e.Quantity)
	}

	var total float64
	for _, b := range buckets {
		total += b
	}
	predicted := roundTo(total/float64(periods), 1)

	return predicted, classifyTrend(buckets[0], buckets[1], cfg.Forecast.TrendThreshold)
}

func classifyTrend(latest, prior, threshold float64) entities.Trend {
	if prior == 0 {
		if latest > 0 {
			return entities.Rising
		}
		return entities.Stable
	}
	change := (latest - prior) / prior
	switch {
	case change > threshold:
		return entities.Rising
	case change < -threshold:
		return entities.Falling
	default:
		return entities.Stable
	}
}

// roundTo keeps forecast output stable for display
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
