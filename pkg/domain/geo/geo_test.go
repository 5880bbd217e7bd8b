package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	manhattan := Coordinates{Lat: 40.7736, Lon: -73.9566}
	brooklyn := Coordinates{Lat: 40.6500, Lon: -73.9500}
	miami := Coordinates{Lat: 25.7617, Lon: -80.1918}

	t.Run("identical points are zero distance", func(t *testing.T) {
		assert.Zero(t, Distance(manhattan, manhattan))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, Distance(manhattan, miami), Distance(miami, manhattan), 1e-9)
	})

	t.Run("known distances", func(t *testing.T) {
		// Manhattan to Brooklyn is roughly 14 km.
		assert.InDelta(t, 13.8, Distance(manhattan, brooklyn), 1.0)
		// Manhattan to Miami is roughly 1760 km.
		assert.InDelta(t, 1760, Distance(manhattan, miami), 30)
	})

	t.Run("closer point yields smaller distance", func(t *testing.T) {
		assert.Less(t, Distance(manhattan, brooklyn), Distance(manhattan, miami))
	})
}
