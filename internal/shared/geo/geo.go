package geo

import (
	"math"

	"backend-citywalk/internal/model"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// PathLengthM sums the distance between consecutive points in the order given.
func PathLengthM(points []model.TrackPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		total += HaversineKm(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude) * 1000
	}
	return total
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
