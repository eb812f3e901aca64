package geo

import (
	"errors"
	"math"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

var ErrInvalidCoordinate = errors.New("coordinate out of range")

// ValidCoordinate reports whether lat/lng form a usable WGS84 coordinate.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Distance returns the great-circle distance between two coordinates in meters.
// Coordinates outside [-90,90] latitude or [-180,180] longitude are rejected.
func Distance(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if !ValidCoordinate(lat1, lng1) || !ValidCoordinate(lat2, lng2) {
		return 0, ErrInvalidCoordinate
	}

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLng := (lng2 - lng1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}
