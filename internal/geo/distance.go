package geo

import "math"

const earthRadiusKm = 6371.0

// UnknownDistance is assigned to listings without a resolvable coordinate so
// they rank last in proximity sorts and fail radius filters.
const UnknownDistance = math.MaxFloat64

// Distance computes the great-circle distance in kilometers between two
// points given in degrees, using the haversine formula. Inputs are not
// validated; callers supply sane coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
