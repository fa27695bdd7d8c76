package utils

import (
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters calculates the great-circle distance between two points
// in meters using the haversine formula
func HaversineMeters(a, b orb.Point) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180.0 }

	dLat := toRad(b.Lat() - a.Lat())
	dLon := toRad(b.Lon() - a.Lon())
	lat1 := toRad(a.Lat())
	lat2 := toRad(b.Lat())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// PathLengthMeters sums the haversine length of every segment of the line
func PathLengthMeters(ls orb.LineString) float64 {
	var total float64
	for i := 1; i < len(ls); i++ {
		total += HaversineMeters(ls[i-1], ls[i])
	}
	return total
}
