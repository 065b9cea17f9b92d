package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// Coordinate is a latitude/longitude pair in decimal degrees.
// Ranges are not checked: any real values produce a defined distance.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DistanceTo returns the great-circle distance in kilometers to other.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return Haversine(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

// Haversine returns the great-circle distance in kilometers between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := toRadians(lat1)
	lat2r := toRadians(lat2)
	dLat := lat2r - lat1r
	dLon := toRadians(lon2) - toRadians(lon1)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
