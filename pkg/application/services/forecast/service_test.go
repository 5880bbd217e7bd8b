package forecast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecostock/ecostock/pkg/application/services/forecast"
	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/infrastructure/repositories/memory"
)

// weeksAgo places a timestamp in the middle of the given trailing weekly
// bucket (0 = current week).
func weeksAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -7*n).Add(-12 * time.Hour)
}

func newForecastService(t *testing.T, events []entities.SalesEvent) *forecast.Service {
	t.Helper()
	sales := memory.NewSalesRepository()
	require.NoError(t, sales.AppendAll(events))
	return forecast.NewService(sales, config.NewRuntime(config.DefaultConfig()))
}

func TestForecastNoHistory(t *testing.T) {
	svc := newForecastService(t, nil)

	entry, err := svc.Forecast(context.Background(), "PARKA", "NYC_BK")
	require.NoError(t, err)
	assert.Zero(t, entry.PredictedNextWeek)
	assert.Equal(t, entities.Stable, entry.Trend)
}

func TestForecastTrendClassification(t *testing.T) {
	tests := []struct {
		name          string
		latest, prior entities.Quantity
		wantPredicted float64
		wantTrend     entities.Trend
	}{
		{"rising", 10, 5, 3.8, entities.Rising},
		{"falling", 2, 10, 3.0, entities.Falling},
		{"stable", 10, 10, 5.0, entities.Stable},
		{"first sales ever count as rising", 6, 0, 1.5, entities.Rising},
		{"within threshold is stable", 11, 10, 5.3, entities.Stable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []entities.SalesEvent
			if tt.latest > 0 {
				events = append(events, entities.SalesEvent{
					StoreID: "NYC_BK", ProductID: "PARKA", Quantity: tt.latest, Timestamp: weeksAgo(0),
				})
			}
			if tt.prior > 0 {
				events = append(events, entities.SalesEvent{
					StoreID: "NYC_BK", ProductID: "PARKA", Quantity: tt.prior, Timestamp: weeksAgo(1),
				})
			}
			svc := newForecastService(t, events)

			entry, err := svc.Forecast(context.Background(), "PARKA", "NYC_BK")
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPredicted, entry.PredictedNextWeek, 0.01)
			assert.Equal(t, tt.wantTrend, entry.Trend)
		})
	}
}

func TestForecastIgnoresEventsOutsideWindow(t *testing.T) {
	svc := newForecastService(t, []entities.SalesEvent{
		{StoreID: "NYC_BK", ProductID: "PARKA", Quantity: 100, Timestamp: weeksAgo(6)},
		{StoreID: "NYC_BK", ProductID: "PARKA", Quantity: 4, Timestamp: weeksAgo(0)},
	})

	entry, err := svc.Forecast(context.Background(), "PARKA", "NYC_BK")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, entry.PredictedNextWeek, 0.01)
}

func TestForecastNetworkAggregatesStores(t *testing.T) {
	svc := newForecastService(t, []entities.SalesEvent{
		{StoreID: "NYC_BK", ProductID: "PARKA", Quantity: 8, Timestamp: weeksAgo(0)},
		{StoreID: "NYC_SOHO", ProductID: "PARKA", Quantity: 4, Timestamp: weeksAgo(0)},
		{StoreID: "NYC_SOHO", ProductID: "TSHIRT", Quantity: 50, Timestamp: weeksAgo(0)},
	})

	entry, err := svc.ForecastNetwork(context.Background(), "PARKA")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, entry.PredictedNextWeek, 0.01)
	assert.Empty(t, entry.StoreID)
}

func TestDemandGap(t *testing.T) {
	svc := newForecastService(t, []entities.SalesEvent{
		{StoreID: "NYC_BK", ProductID: "PARKA", Quantity: 32, Timestamp: weeksAgo(0)},
		{StoreID: "NYC_BK", ProductID: "PARKA", Quantity: 32, Timestamp: weeksAgo(1)},
	})

	// Predicted (32+32)/4 = 16/week against 4 on hand.
	gap, err := svc.DemandGap(context.Background(), "PARKA", "NYC_BK", 4)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, gap, 0.01)

	// Plenty of stock yields a non-positive gap.
	gap, err = svc.DemandGap(context.Background(), "PARKA", "NYC_BK", 40)
	require.NoError(t, err)
	assert.LessOrEqual(t, gap, 0.0)
}
