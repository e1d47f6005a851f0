// Package geo provides great-circle distance math for radius filtering.
// Coordinates span tens to hundreds of kilometers across a country, so
// distances use the haversine formula rather than planar approximations.
package geo

import "math"

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

// Distance returns the great-circle distance between a and b in kilometers.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// WithinRadius returns the distance from origin to p and whether p lies
// within radiusKm. The containment test is a plain cutoff on the distance, so
// enlarging the radius can only grow the contained set.
func WithinRadius(origin, p Point, radiusKm float64) (float64, bool) {
	d := Distance(origin, p)
	return d, d <= radiusKm
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
