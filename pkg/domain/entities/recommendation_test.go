package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecostock/ecostock/pkg/domain/geo"
)

func TestNewRecommendation(t *testing.T) {
	now := time.Now()
	co2 := decimal.RequireFromString("3.25")

	tests := []struct {
		name    string
		id      string
		product ProductID
		source  StoreID
		dest    StoreID
		qty     Quantity
		co2     decimal.Decimal
		method  TransferMethod
		wantErr string
	}{
		{"valid store transfer", "r1", "PARKA", "NYC_SOHO", "NYC_BK", 10, co2, StoreTransfer, ""},
		{"valid restock order", "r2", "PARKA", "", "NYC_BK", 5, decimal.Zero, RestockOrder, ""},
		{"empty id", "", "PARKA", "NYC_SOHO", "NYC_BK", 10, co2, StoreTransfer, "recommendation ID cannot be empty"},
		{"empty product", "r3", "", "NYC_SOHO", "NYC_BK", 10, co2, StoreTransfer, "product ID cannot be empty"},
		{"empty destination", "r4", "PARKA", "NYC_SOHO", "", 10, co2, StoreTransfer, "destination store cannot be empty"},
		{"zero quantity", "r5", "PARKA", "NYC_SOHO", "NYC_BK", 0, co2, StoreTransfer, "quantity must be positive"},
		{"negative co2", "r6", "PARKA", "NYC_SOHO", "NYC_BK", 10, decimal.RequireFromString("-1"), StoreTransfer, "co2 saved cannot be negative"},
		{"transfer without source", "r7", "PARKA", "", "NYC_BK", 10, co2, StoreTransfer, "store transfer requires a source store"},
		{"restock with source", "r8", "PARKA", "NYC_SOHO", "NYC_BK", 10, decimal.Zero, RestockOrder, "restock order cannot have a source store"},
		{"unknown method", "r9", "PARKA", "NYC_SOHO", "NYC_BK", 10, co2, TransferMethod(99), "unknown transfer method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewRecommendation(tt.id, tt.product, tt.source, tt.dest, tt.qty, tt.co2, tt.method, now)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Pending, rec.State)
			assert.Equal(t, tt.method, rec.Method)
		})
	}
}

func TestRecommendationStateTerminal(t *testing.T) {
	assert.False(t, Pending.Terminal())
	assert.False(t, Approved.Terminal())
	assert.True(t, Rejected.Terminal())
	assert.True(t, Executed.Terminal())
}

func TestNewStoreValidation(t *testing.T) {
	loc := geo.Coordinates{Lat: 40.65, Lon: -73.95}

	_, err := NewStore("", "Brooklyn Outlet", Outlet, loc, "")
	assert.ErrorContains(t, err, "store ID cannot be empty")

	_, err = NewStore("NYC_BK", "", Outlet, loc, "")
	assert.ErrorContains(t, err, "store name cannot be empty")

	_, err = NewStore("NYC_BK", "Brooklyn Outlet", Outlet, geo.Coordinates{Lat: 91, Lon: 0}, "")
	assert.ErrorContains(t, err, "latitude out of range")

	_, err = NewStore("NYC_BK", "Brooklyn Outlet", Outlet, geo.Coordinates{Lat: 40, Lon: -181}, "")
	assert.ErrorContains(t, err, "longitude out of range")

	store, err := NewStore("NYC_BK", "Brooklyn Outlet", Outlet, loc, "1000 Flatbush Ave")
	require.NoError(t, err)
	assert.Equal(t, "Outlet", store.Type.String())
}
