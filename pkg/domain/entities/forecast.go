package entities

// Trend classifies the direction of recent demand for a product at a store
type Trend int

const (
	Stable Trend = iota
	Rising
	Falling
)

// String method for Trend enum
func (t Trend) String() string {
	switch t {
	case Stable:
		return "Stable"
	case Rising:
		return "Rising"
	case Falling:
		return "Falling"
	default:
		return "Unknown"
	}
}

// ForecastEntry projects next-period demand for a product at a store.
// Recomputed on demand from sales history, never persisted.
type ForecastEntry struct {
	ProductID          ProductID
	StoreID            StoreID
	PredictedNextWeek  float64
	Trend              Trend
}

// AffinityVector holds a store's category preference scores derived from
// sales history. Scores are trailing-window velocity in units per week,
// directly comparable across stores; higher means stronger historical
// preference.
type AffinityVector struct {
	StoreID StoreID
	Scores  map[Category]float64
}

// Score returns the store's score for a category, zero if absent
func (v *AffinityVector) Score(category Category) float64 {
	if v == nil || v.Scores == nil {
		return 0
	}
	return v.Scores[category]
}
