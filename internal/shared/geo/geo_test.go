package geo

import (
	"testing"

	"backend-citywalk/internal/model"
)

func TestHaversineKm(t *testing.T) {
	// People's Square (31.2304, 121.4737) to Lujiazui (31.2397, 121.4998) ~ 2.6 km
	d := HaversineKm(31.2304, 121.4737, 31.2397, 121.4998)
	if d < 2.3 || d > 2.9 {
		t.Fatalf("unexpected distance: %v", d)
	}
	if HaversineKm(31.2304, 121.4737, 31.2304, 121.4737) != 0 {
		t.Fatalf("expected zero distance for identical points")
	}
}

func TestPathLengthM(t *testing.T) {
	if PathLengthM(nil) != 0 {
		t.Fatalf("expected zero for empty path")
	}
	if PathLengthM([]model.TrackPoint{{Latitude: 31.23, Longitude: 121.47}}) != 0 {
		t.Fatalf("expected zero for single point")
	}

	points := []model.TrackPoint{
		{Latitude: 31.2301, Longitude: 121.4731},
		{Latitude: 31.2308, Longitude: 121.4749},
		{Latitude: 31.2315, Longitude: 121.4762},
	}
	total := PathLengthM(points)
	direct := HaversineKm(31.2301, 121.4731, 31.2315, 121.4762) * 1000
	if total < direct {
		t.Fatalf("path %v shorter than direct distance %v", total, direct)
	}
	if total < 250 || total > 400 {
		t.Fatalf("unexpected path length: %v", total)
	}
}
