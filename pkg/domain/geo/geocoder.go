package geo

import (
	"math/rand"
	"strings"
	"sync"
)

// Geocoder resolves a free-text address to coordinates. Implementations
// never fail: an address that cannot be matched resolves to a default
// region instead.
type Geocoder interface {
	Resolve(address string) Coordinates
}

// Region maps address keywords to a base coordinate
type Region struct {
	Keywords []string
	Coord    Coordinates
}

// KeywordGeocoder resolves addresses by substring keyword matching against
// a fixed region table. Unmatched addresses resolve to the default region.
// A small bounded jitter is added so that textually distinct addresses do
// not collide exactly; the jitter is cosmetic and carries no location
// semantics.
type KeywordGeocoder struct {
	regions       []Region
	defaultRegion Coordinates
	jitterDegrees float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewKeywordGeocoder creates a keyword geocoder. The randomness source is
// injected so tests can supply a seeded generator and assert exact
// coordinates. A nil rng disables jitter entirely.
func NewKeywordGeocoder(regions []Region, defaultRegion Coordinates, jitterDegrees float64, rng *rand.Rand) *KeywordGeocoder {
	return &KeywordGeocoder{
		regions:       regions,
		defaultRegion: defaultRegion,
		jitterDegrees: jitterDegrees,
		rng:           rng,
	}
}

// Verify interface compliance
var _ Geocoder = (*KeywordGeocoder)(nil)

// Resolve maps an address to coordinates. The same keyword always yields
// the same base region; only the sub-degree jitter varies.
func (g *KeywordGeocoder) Resolve(address string) Coordinates {
	base := g.defaultRegion
	lower := strings.ToLower(address)

	for _, region := range g.regions {
		if matchesRegion(lower, region) {
			base = region.Coord
			break
		}
	}

	jLat, jLon := g.jitter()
	return Coordinates{Lat: base.Lat + jLat, Lon: base.Lon + jLon}
}

func matchesRegion(lowerAddress string, region Region) bool {
	for _, kw := range region.Keywords {
		if strings.Contains(lowerAddress, kw) {
			return true
		}
	}
	return false
}

func (g *KeywordGeocoder) jitter() (float64, float64) {
	if g.rng == nil || g.jitterDegrees == 0 {
		return 0, 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	// Uniform in [-jitterDegrees/2, +jitterDegrees/2)
	return (g.rng.Float64() - 0.5) * g.jitterDegrees, (g.rng.Float64() - 0.5) * g.jitterDegrees
}
