// Package geo holds the small amount of spherical geometry the catalogue
// needs: great-circle distance between two points and a bounding box for
// narrowing SQL scans before the exact distance check.
package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// latitude/longitude points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Box is a latitude/longitude rectangle.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// BoundingBox returns a rectangle that contains every point within radiusKm
// of the centre. The box over-covers, more so at high latitudes; callers
// must re-check the exact distance on each candidate.
func BoundingBox(lat, lng, radiusKm float64) Box {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	cosLat := math.Cos(rad(lat))
	if cosLat < 0.01 {
		cosLat = 0.01 // near the poles every longitude is close
	}
	dLng := dLat / cosLat
	return Box{
		MinLat: lat - dLat, MaxLat: lat + dLat,
		MinLng: lng - dLng, MaxLng: lng + dLng,
	}
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
