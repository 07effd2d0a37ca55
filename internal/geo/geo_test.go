package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Mumbai and Pune city centres; road signs say ~150 km but the
// great-circle distance is just under 120.
const (
	mumbaiLat = 19.0760
	mumbaiLng = 72.8777
	puneLat   = 18.5204
	puneLng   = 73.8567
)

func TestHaversineKm(t *testing.T) {
	d := HaversineKm(mumbaiLat, mumbaiLng, puneLat, puneLng)
	assert.InDelta(t, 119.5, d, 2.0)

	// Symmetric, and zero for identical points.
	assert.Equal(t, d, HaversineKm(puneLat, puneLng, mumbaiLat, mumbaiLng))
	assert.Zero(t, HaversineKm(mumbaiLat, mumbaiLng, mumbaiLat, mumbaiLng))
}

func TestHaversineKmShortDistance(t *testing.T) {
	// One degree of latitude is about 111 km everywhere.
	d := HaversineKm(19.0, 72.0, 20.0, 72.0)
	assert.InDelta(t, 111.2, d, 0.5)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	box := BoundingBox(mumbaiLat, mumbaiLng, 10)

	assert.True(t, box.Contains(mumbaiLat, mumbaiLng))

	// Points just inside 10 km in each cardinal direction stay in the box.
	north := mumbaiLat + 9.9/111.2
	east := mumbaiLng + 9.9/(111.2*0.945) // cos(19°) ≈ 0.945
	assert.True(t, box.Contains(north, mumbaiLng))
	assert.True(t, box.Contains(mumbaiLat, east))

	// Pune is ~120 km away and must be pre-filtered out.
	assert.False(t, box.Contains(puneLat, puneLng))
}

func TestBoundingBoxOverCovers(t *testing.T) {
	// The box is a superset of the circle: its corners are farther than the
	// radius, which is why callers re-check the exact distance.
	box := BoundingBox(mumbaiLat, mumbaiLng, 10)
	corner := HaversineKm(mumbaiLat, mumbaiLng, box.MaxLat, box.MaxLng)
	assert.Greater(t, corner, 10.0)
	assert.Less(t, corner, 25.0)
}
