package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// KmPerDegree approximates the length of one degree of latitude.
const KmPerDegree = 111.0

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Return coordinates as a [lat, lon] vector.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lon} }

// DistanceKm returns the haversine great-circle distance to other in kilometers.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	dLat := toRadians(other.Lat - c.Lat)
	dLon := toRadians(other.Lon - c.Lon)
	u := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(c.Lat))*math.Cos(toRadians(other.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(u), math.Sqrt(1-u))
}

// Offset moves c by a planar offset in kilometers (dx east, dy north).
//
// The flat-earth conversion is only acceptable for offsets of a few tens of
// kilometers.
func (c Coordinates) Offset(dxKm, dyKm float64) Coordinates {
	return Coordinates{
		Lat: c.Lat + dyKm/KmPerDegree,
		Lon: c.Lon + dxKm/(KmPerDegree*math.Cos(toRadians(c.Lat))),
	}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
