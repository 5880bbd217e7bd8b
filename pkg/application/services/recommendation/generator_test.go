package recommendation_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecostock/ecostock/pkg/application/services/affinity"
	"github.com/ecostock/ecostock/pkg/application/services/forecast"
	"github.com/ecostock/ecostock/pkg/application/services/inventory"
	"github.com/ecostock/ecostock/pkg/application/services/recommendation"
	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/infrastructure/events"
	"github.com/ecostock/ecostock/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/ecostock/ecostock/pkg/infrastructure/testing"
)

type stack struct {
	generator *recommendation.Generator
	workflow  *recommendation.Workflow
	recs      *memory.RecommendationRepository
	inventory *memory.InventoryRepository
	audit     *events.InMemoryStore
}

func newStack(t *testing.T) *stack {
	t.Helper()
	stores, products, inventoryRepo, sales := testhelpers.BuildRetailTestData()
	rt := config.NewRuntime(config.DefaultConfig())

	inventorySvc := inventory.NewService(stores, products, inventoryRepo, sales, rt, nil)
	inventoryRepo.SetStatusFunc(inventorySvc.StatusFor)
	require.NoError(t, inventorySvc.RefreshStatuses(context.Background()))

	forecastSvc := forecast.NewService(sales, rt)
	affinitySvc := affinity.NewService(sales, products, rt)
	recs := memory.NewRecommendationRepository()
	audit := events.NewInMemoryStore()

	generator := recommendation.NewGenerator(stores, products, inventoryRepo, recs,
		inventorySvc, affinitySvc, forecastSvc, audit, rt, nil)
	executor := recommendation.NewExecutor(inventoryRepo, inventorySvc, nil)
	workflow := recommendation.NewWorkflow(recs, executor, audit, nil)

	return &stack{
		generator: generator,
		workflow:  workflow,
		recs:      recs,
		inventory: inventoryRepo,
		audit:     audit,
	}
}

func TestGenerateProposesDonorTransfer(t *testing.T) {
	s := newStack(t)

	generated, err := s.generator.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, generated, 1)

	// SoHo sits on 60 parkas nobody buys; Brooklyn sells 8 a week off a
	// 4-unit shelf. The gap (8 forecast - 4 on hand) routes from the
	// dead-stock donor.
	rec := generated[0]
	assert.Equal(t, entities.StoreTransfer, rec.Method)
	assert.Equal(t, entities.ProductID("PARKA"), rec.ProductID)
	assert.Equal(t, entities.StoreID("NYC_SOHO"), rec.SourceStoreID)
	assert.Equal(t, entities.StoreID("NYC_BK"), rec.DestStoreID)
	assert.Equal(t, entities.Quantity(4), rec.Quantity)
	assert.Equal(t, entities.Pending, rec.State)
	assert.True(t, rec.CO2SavedKg.IsPositive(), "transfer shorter than the warehouse leg must save emissions")
}

func TestGenerateIsIdempotentWhilePending(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.generator.Generate(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A second scan with the proposal still pending adds nothing.
	second, err := s.generator.Generate(ctx)
	require.NoError(t, err)
	assert.Empty(t, second)

	all, err := s.recs.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGenerateRecordsProposedEvent(t *testing.T) {
	s := newStack(t)

	generated, err := s.generator.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, generated, 1)

	trail, err := s.audit.History(generated[0].ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, events.RecommendationProposed, trail[0].Type)
	assert.Equal(t, "NYC_SOHO", trail[0].Data["source_store_id"])
}

func TestGenerateRestockOrderWithoutViableDonor(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	// Drain the donor; Brooklyn's parka gap remains but nothing can be
	// transferred, so the scan falls back to a restock order.
	_, err := s.inventory.Decrement("NYC_SOHO", "PARKA", 60)
	require.NoError(t, err)

	generated, err := s.generator.Generate(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, generated)

	var brooklyn *entities.Recommendation
	for _, rec := range generated {
		assert.Equal(t, entities.RestockOrder, rec.Method)
		assert.Empty(t, rec.SourceStoreID)
		assert.True(t, rec.CO2SavedKg.IsZero())
		if rec.DestStoreID == "NYC_BK" {
			brooklyn = rec
		}
	}
	require.NotNil(t, brooklyn, "Brooklyn's parka gap must yield a restock order")
	assert.Equal(t, entities.Quantity(4), brooklyn.Quantity)
}

func TestGenerateQuantityIsCapped(t *testing.T) {
	stores, products, inventoryRepo, sales := testhelpers.BuildRetailTestData()
	cfg := config.DefaultConfig()
	cfg.Recommend.MaxTransferQty = 2
	rt := config.NewRuntime(cfg)

	inventorySvc := inventory.NewService(stores, products, inventoryRepo, sales, rt, nil)
	inventoryRepo.SetStatusFunc(inventorySvc.StatusFor)
	forecastSvc := forecast.NewService(sales, rt)
	affinitySvc := affinity.NewService(sales, products, rt)
	recs := memory.NewRecommendationRepository()
	generator := recommendation.NewGenerator(stores, products, inventoryRepo, recs,
		inventorySvc, affinitySvc, forecastSvc, nil, rt, nil)

	generated, err := generator.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, generated, 1)
	assert.Equal(t, entities.Quantity(2), generated[0].Quantity)
}

func TestExecutorRestockOrderIncrementsDestination(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	rec, err := entities.NewRecommendation("restock-1", "PARKA", "", "MIA_BEACH", 10,
		decimal.Zero, entities.RestockOrder, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.recs.Save(rec))

	approved, err := s.workflow.Approve(ctx, "restock-1")
	require.NoError(t, err)
	assert.Equal(t, entities.Executed, approved.State)

	got, err := s.inventory.Get("MIA_BEACH", "PARKA")
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(10), got.Quantity)
}
