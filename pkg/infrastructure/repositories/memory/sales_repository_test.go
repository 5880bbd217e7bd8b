package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecostock/ecostock/pkg/domain/entities"
)

func TestSalesRepositoryFilters(t *testing.T) {
	repo := NewSalesRepository()
	now := time.Now()

	events := []entities.SalesEvent{
		{StoreID: "NYC_SOHO", ProductID: "PARKA", Quantity: 1, Timestamp: now.AddDate(0, 0, -1)},
		{StoreID: "NYC_SOHO", ProductID: "TSHIRT", Quantity: 3, Timestamp: now.AddDate(0, 0, -2)},
		{StoreID: "NYC_BK", ProductID: "PARKA", Quantity: 2, Timestamp: now.AddDate(0, 0, -3)},
		{StoreID: "NYC_BK", ProductID: "PARKA", Quantity: 4, Timestamp: now.AddDate(0, 0, -40)},
	}
	require.NoError(t, repo.AppendAll(events))

	since := now.AddDate(0, 0, -28)

	t.Run("by store and product", func(t *testing.T) {
		got, err := repo.EventsSince("NYC_BK", "PARKA", since)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, entities.Quantity(2), got[0].Quantity)
	})

	t.Run("by store", func(t *testing.T) {
		got, err := repo.EventsByStoreSince("NYC_SOHO", since)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by product", func(t *testing.T) {
		got, err := repo.EventsByProductSince("PARKA", since)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("window excludes old events", func(t *testing.T) {
		got, err := repo.EventsSince("NYC_BK", "PARKA", now.AddDate(0, 0, -60))
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("append grows the log", func(t *testing.T) {
		require.NoError(t, repo.Append(entities.SalesEvent{
			StoreID: "NYC_SOHO", ProductID: "PARKA", Quantity: 1, Timestamp: now,
		}))
		got, err := repo.EventsSince("NYC_SOHO", "PARKA", since)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
