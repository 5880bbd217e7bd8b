// Package recommendation proposes inter-store transfers of dead stock,
// governs their approval lifecycle, and executes approved transfers.
package recommendation

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecostock/ecostock/pkg/application/services/affinity"
	"github.com/ecostock/ecostock/pkg/application/services/forecast"
	"github.com/ecostock/ecostock/pkg/application/services/inventory"
	"github.com/ecostock/ecostock/pkg/config"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/geo"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
	"github.com/ecostock/ecostock/pkg/infrastructure/events"
)

// Generator scans inventory, affinity, and forecast state and proposes
// transfers. Each run regenerates from current state; re-running without
// state changes proposes nothing new because pending triples are
// deduplicated.
type Generator struct {
	stores    repositories.StoreRepository
	products  repositories.ProductRepository
	inventryR repositories.InventoryRepository
	recs      repositories.RecommendationRepository
	inventory *inventory.Service
	affinity  *affinity.Service
	forecast  *forecast.Service
	audit     events.Store
	cfg       *config.Runtime
	logger    *slog.Logger
}

// NewGenerator creates a recommendation generator. A nil audit store
// disables the audit trail.
func NewGenerator(
	stores repositories.StoreRepository,
	products repositories.ProductRepository,
	inventoryRepo repositories.InventoryRepository,
	recs repositories.RecommendationRepository,
	inventorySvc *inventory.Service,
	affinitySvc *affinity.Service,
	forecastSvc *forecast.Service,
	audit events.Store,
	cfg *config.Runtime,
	logger *slog.Logger,
) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		stores:    stores,
		products:  products,
		inventryR: inventoryRepo,
		recs:      recs,
		inventory: inventorySvc,
		affinity:  affinitySvc,
		forecast:  forecastSvc,
		audit:     audit,
		cfg:       cfg,
		logger:    logger,
	}
}

// donor is a dead-stock record with quantity still unclaimed this run
type donor struct {
	store     *entities.Store
	remaining entities.Quantity
}

// Generate produces fresh recommendations from current inventory,
// affinity, and forecast state, saves them Pending, and returns them.
func (g *Generator) Generate(ctx context.Context) ([]*entities.Recommendation, error) {
	stores, err := g.stores.GetAllStores()
	if err != nil {
		return nil, err
	}
	products, err := g.products.GetAllProducts()
	if err != nil {
		return nil, err
	}

	vectors := make(map[entities.StoreID]*entities.AffinityVector, len(stores))
	for _, store := range stores {
		v, err := g.affinity.ComputeAffinity(ctx, store.ID)
		if err != nil {
			return nil, err
		}
		vectors[store.ID] = v
	}

	var generated []*entities.Recommendation
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := g.generateForProduct(ctx, product, stores, vectors)
		if err != nil {
			return nil, err
		}
		generated = append(generated, recs...)
	}

	g.logger.Info("recommendation scan complete", slog.Int("generated", len(generated)))
	return generated, nil
}

func (g *Generator) generateForProduct(ctx context.Context, product *entities.Product, stores []*entities.Store, vectors map[entities.StoreID]*entities.AffinityVector) ([]*entities.Recommendation, error) {
	cfg := g.cfg.Snapshot()

	donors, err := g.deadStockDonors(product.ID, stores)
	if err != nil {
		return nil, err
	}

	var out []*entities.Recommendation
	for _, dest := range stores {
		currentQty := entities.Quantity(0)
		if rec, err := g.inventryR.Get(dest.ID, product.ID); err == nil {
			currentQty = rec.Quantity
		}

		gap, err := g.forecast.DemandGap(ctx, product.ID, dest.ID, currentQty)
		if err != nil {
			return nil, err
		}
		if gap <= 0 {
			continue
		}
		gapQty := entities.Quantity(math.Ceil(gap))

		destScore := vectors[dest.ID].Score(product.Category)
		best := g.pickDonor(donors, dest, destScore, vectors, product.Category, cfg)

		if best == nil {
			rec, err := g.propose(product, nil, dest, gapQty, cfg)
			if err != nil {
				return nil, err
			}
			if rec != nil {
				out = append(out, rec)
			}
			continue
		}

		qty := minQty(best.remaining, gapQty, entities.Quantity(cfg.Recommend.MaxTransferQty))
		rec, err := g.propose(product, best.store, dest, qty, cfg)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			best.remaining -= qty
			out = append(out, rec)
		}
	}
	return out, nil
}

// deadStockDonors finds stores whose record for the product is currently
// dead stock, classified live rather than from the stored status so a
// stale snapshot cannot leak into proposals.
func (g *Generator) deadStockDonors(productID entities.ProductID, stores []*entities.Store) (map[entities.StoreID]*donor, error) {
	records, err := g.inventryR.GetByProduct(productID)
	if err != nil {
		return nil, err
	}

	byID := make(map[entities.StoreID]*entities.Store, len(stores))
	for _, s := range stores {
		byID[s.ID] = s
	}

	donors := make(map[entities.StoreID]*donor)
	for _, rec := range records {
		status := g.inventory.StatusFor(rec.StoreID, rec.ProductID, rec.Quantity)
		if status != entities.DeadStock {
			continue
		}
		store, ok := byID[rec.StoreID]
		if !ok {
			continue
		}
		donors[rec.StoreID] = &donor{store: store, remaining: rec.Quantity}
	}
	return donors, nil
}

// pickDonor returns the viable donor with the most unclaimed dead stock,
// ties broken by distance to the destination then store ID. A donor is
// viable when the destination's category affinity is materially higher
// than the donor's own.
func (g *Generator) pickDonor(donors map[entities.StoreID]*donor, dest *entities.Store, destScore float64, vectors map[entities.StoreID]*entities.AffinityVector, category entities.Category, cfg *config.Config) *donor {
	var best *donor
	var bestDist float64
	for _, d := range donors {
		if d.store.ID == dest.ID || d.remaining <= 0 {
			continue
		}
		sourceScore := vectors[d.store.ID].Score(category)
		if !materiallyHigher(destScore, sourceScore, cfg) {
			continue
		}
		dist := geo.Distance(d.store.Location, dest.Location)
		switch {
		case best == nil,
			d.remaining > best.remaining,
			d.remaining == best.remaining && dist < bestDist,
			d.remaining == best.remaining && dist == bestDist && d.store.ID < best.store.ID:
			best = d
			bestDist = dist
		}
	}
	return best
}

// materiallyHigher reports whether dest's affinity clears the configured
// margin over source's, by ratio or by absolute units/week.
func materiallyHigher(dest, source float64, cfg *config.Config) bool {
	if dest <= source {
		return false
	}
	if source == 0 {
		return dest >= cfg.Recommend.AffinityMarginAbs
	}
	return dest >= source*cfg.Recommend.AffinityMarginRatio || dest-source >= cfg.Recommend.AffinityMarginAbs
}

// propose creates and saves one Pending recommendation, or returns nil if
// an identical triple is already pending. A nil source store proposes an
// externally sourced RestockOrder.
func (g *Generator) propose(product *entities.Product, source *entities.Store, dest *entities.Store, qty entities.Quantity, cfg *config.Config) (*entities.Recommendation, error) {
	if qty <= 0 {
		return nil, nil
	}

	var sourceID entities.StoreID
	method := entities.RestockOrder
	co2 := decimal.Zero
	if source != nil {
		sourceID = source.ID
		method = entities.StoreTransfer
		co2 = co2Saved(source, dest, product, qty, cfg)
	}

	pending, err := g.recs.HasPending(sourceID, dest.ID, product.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, nil
	}

	rec, err := entities.NewRecommendation(uuid.New().String(), product.ID, sourceID, dest.ID, qty, co2, method, time.Now())
	if err != nil {
		return nil, err
	}
	if err := g.recs.Save(rec); err != nil {
		return nil, err
	}
	if g.audit != nil {
		data := map[string]string{
			"product_id":    string(product.ID),
			"dest_store_id": string(dest.ID),
			"method":        method.String(),
		}
		if source != nil {
			data["source_store_id"] = string(source.ID)
		}
		if err := g.audit.Append(rec.ID, events.RecommendationProposed, data); err != nil {
			g.logger.Warn("failed to record audit event",
				slog.String("id", rec.ID),
				slog.String("error", err.Error()))
		}
	}
	return rec, nil
}

// co2Saved estimates the emissions avoided by sourcing from the donor
// store instead of the notional remote warehouse. Monotone in avoided
// distance and quantity, clamped non-negative.
func co2Saved(source, dest *entities.Store, product *entities.Product, qty entities.Quantity, cfg *config.Config) decimal.Decimal {
	remote := geo.Coordinates{Lat: cfg.Emissions.RemoteWarehouseLat, Lon: cfg.Emissions.RemoteWarehouseLon}
	remoteLeg := geo.Distance(remote, dest.Location)
	transferLeg := geo.Distance(source.Location, dest.Location)

	avoidedKm := remoteLeg - transferLeg
	if avoidedKm <= 0 {
		return decimal.Zero
	}

	perUnit := decimal.NewFromFloat(avoidedKm * cfg.Emissions.KgCO2PerKgKm).Mul(product.UnitWeightKg)
	return perUnit.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

func minQty(values ...entities.Quantity) entities.Quantity {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
