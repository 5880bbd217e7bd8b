package seed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecostock/ecostock/pkg/infrastructure/repositories/memory"
	"github.com/ecostock/ecostock/pkg/infrastructure/seed"
)

func loadDemo(t *testing.T) seed.Repositories {
	t.Helper()

	repos := seed.Repositories{
		Stores:    memory.NewStoreRepository(),
		Products:  memory.NewProductRepository(),
		Inventory: memory.NewInventoryRepository(),
		Sales:     memory.NewSalesRepository(),
	}
	require.NoError(t, seed.Load(repos))
	return repos
}

func TestLoadPopulatesNetwork(t *testing.T) {
	repos := loadDemo(t)

	stores, err := repos.Stores.GetAllStores()
	require.NoError(t, err)
	assert.Len(t, stores, 4)

	products, err := repos.Products.GetAllProducts()
	require.NoError(t, err)
	assert.Len(t, products, 14)

	records, err := repos.Inventory.GetAll()
	require.NoError(t, err)
	assert.Len(t, records, 26)
}

func TestLoadSeedsDeadStockScenario(t *testing.T) {
	repos := loadDemo(t)

	// Manhattan sits on a pile of parkas that Brooklyn moves quickly.
	donor, err := repos.Inventory.Get("STORE_A", "PARKA")
	require.NoError(t, err)
	assert.EqualValues(t, 60, donor.Quantity)

	dest, err := repos.Inventory.Get("STORE_B", "PARKA")
	require.NoError(t, err)
	assert.EqualValues(t, 5, dest.Quantity)

	since := time.Now().AddDate(0, 0, -28)
	donorSales, err := repos.Sales.EventsSince("STORE_A", "PARKA", since)
	require.NoError(t, err)
	destSales, err := repos.Sales.EventsSince("STORE_B", "PARKA", since)
	require.NoError(t, err)
	assert.Less(t, len(donorSales), len(destSales),
		"donor should barely sell what the destination moves constantly")
}

func TestLoadHistoryRealizesVelocity(t *testing.T) {
	repos := loadDemo(t)

	// STORE_A sells 12 t-shirts a week, seeded over four weeks.
	since := time.Now().AddDate(0, 0, -29)
	events, err := repos.Sales.EventsSince("STORE_A", "TSHIRT", since)
	require.NoError(t, err)

	var total int
	for _, ev := range events {
		total += int(ev.Quantity)
		assert.False(t, ev.Timestamp.After(time.Now()), "history must lie in the past")
	}
	assert.Equal(t, 48, total)
}

func TestLoadIncludesOutOfStockRecord(t *testing.T) {
	repos := loadDemo(t)

	rec, err := repos.Inventory.Get("STORE_C", "DENIM_JACKET")
	require.NoError(t, err)
	assert.EqualValues(t, 0, rec.Quantity)
}
