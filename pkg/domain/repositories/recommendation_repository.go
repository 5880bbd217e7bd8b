package repositories

import "github.com/ecostock/ecostock/pkg/domain/entities"

// RecommendationRepository stores transfer recommendations. Records are
// never deleted; decisions are expressed as state transitions. State
// changes go through CompareAndSwapState so concurrent transitions on the
// same recommendation are serialized and stale writers are rejected.
type RecommendationRepository interface {
	Save(rec *entities.Recommendation) error
	Get(id string) (*entities.Recommendation, error)
	GetAll() ([]*entities.Recommendation, error)
	GetByState(state entities.RecommendationState) ([]*entities.Recommendation, error)

	// HasPending reports whether a Pending recommendation already exists
	// for the (source, dest, product) triple.
	HasPending(source, dest entities.StoreID, productID entities.ProductID) (bool, error)

	// CompareAndSwapState atomically moves the recommendation from state
	// `from` to state `to`, recording note. It returns swapped=false with
	// the current record when the recommendation is not in `from`.
	CompareAndSwapState(id string, from, to entities.RecommendationState, note string) (swapped bool, current *entities.Recommendation, err error)
}
