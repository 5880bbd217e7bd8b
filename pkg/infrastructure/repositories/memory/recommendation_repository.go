package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
)

// RecommendationRepository provides in-memory recommendation storage with
// compare-and-swap state transitions serialized per recommendation.
type RecommendationRepository struct {
	mu   sync.RWMutex
	recs map[string]*entities.Recommendation
}

// NewRecommendationRepository creates a new in-memory recommendation repository
func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{
		recs: make(map[string]*entities.Recommendation),
	}
}

// Verify interface compliance
var _ repositories.RecommendationRepository = (*RecommendationRepository)(nil)

// Save stores a recommendation, keyed by its ID
func (r *RecommendationRepository) Save(rec *entities.Recommendation) error {
	if rec.ID == "" {
		return fmt.Errorf("recommendation ID cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *rec
	r.recs[rec.ID] = &stored
	return nil
}

// Get returns a copy of the recommendation with the given ID
func (r *RecommendationRepository) Get(id string) (*entities.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, entities.ErrRecommendationNotFound)
	}
	out := *rec
	return &out, nil
}

// GetAll returns copies of every recommendation, newest first
func (r *RecommendationRepository) GetAll() ([]*entities.Recommendation, error) {
	return r.list(func(*entities.Recommendation) bool { return true }), nil
}

// GetByState returns copies of recommendations in the given state, newest first
func (r *RecommendationRepository) GetByState(state entities.RecommendationState) ([]*entities.Recommendation, error) {
	return r.list(func(rec *entities.Recommendation) bool { return rec.State == state }), nil
}

// HasPending reports whether a Pending recommendation exists for the triple
func (r *RecommendationRepository) HasPending(source, dest entities.StoreID, productID entities.ProductID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.recs {
		if rec.State == entities.Pending &&
			rec.SourceStoreID == source &&
			rec.DestStoreID == dest &&
			rec.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// CompareAndSwapState atomically transitions a recommendation between
// states. Returns swapped=false with the current record if the
// recommendation is not in the expected `from` state.
func (r *RecommendationRepository) CompareAndSwapState(id string, from, to entities.RecommendationState, note string) (bool, *entities.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[id]
	if !ok {
		return false, nil, fmt.Errorf("%s: %w", id, entities.ErrRecommendationNotFound)
	}
	if rec.State != from {
		out := *rec
		return false, &out, nil
	}
	rec.State = to
	if note != "" {
		rec.Note = note
	}
	out := *rec
	return true, &out, nil
}

func (r *RecommendationRepository) list(match func(*entities.Recommendation) bool) []*entities.Recommendation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.Recommendation
	for _, rec := range r.recs {
		if match(rec) {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
