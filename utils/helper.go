package utils

import (
	"math"
)

const (
	// Radius bounds enforced server-side on the places proxy, in meters.
	MinRadiusMeters     = 500
	MaxRadiusMeters     = 50000
	DefaultRadiusMeters = 5000

	// Result bounds applied to every transformed place list.
	MaxPlaceResults = 40
	MaxPhotoRefs    = 1

	earthRadiusKm = 6371.0
)

// ClampRadius bounds a requested search radius to [500, 50000] meters.
// Non-finite or non-positive input falls back to the default radius.
func ClampRadius(r float64) int {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return DefaultRadiusMeters
	}
	rounded := int(math.Round(r))
	if rounded < MinRadiusMeters {
		return MinRadiusMeters
	}
	if rounded > MaxRadiusMeters {
		return MaxRadiusMeters
	}
	return rounded
}

// HaversineKm returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
