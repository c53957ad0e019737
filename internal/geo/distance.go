// Package geo provides pure great-circle distance computation.
//
// Distances use the spherical law of cosines on WGS-84 coordinates. Road
// routing is deliberately out of scope; the value feeds fare and ETA
// estimation only.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometers between two
// points given in decimal degrees, rounded to 2 decimals.
//
// For (near-)identical points floating-point error can push the cosine
// argument outside [-1, 1]; the result is clamped so the distance comes
// back as exactly 0 instead of NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := degToRad(lat1)
	rLon1 := degToRad(lon1)
	rLat2 := degToRad(lat2)
	rLon2 := degToRad(lon2)

	arg := math.Sin(rLat1)*math.Sin(rLat2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Cos(rLon2-rLon1)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}

	d := math.Acos(arg) * EarthRadiusKm
	return math.Round(d*100) / 100
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
