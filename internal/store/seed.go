package store

import (
	"time"

	"backend-citywalk/internal/model"
)

// DefaultSeed returns the demo data set the API starts with. Track timestamps
// are relative to now.
func DefaultSeed(now time.Time) Seed {
	now = now.UTC()
	return Seed{
		ContentPoints: []model.ContentPoint{
			{
				ID:              "cp-001",
				Title:           "老城街角的咖啡馆",
				Category:        "生活方式",
				Description:     "一家植根在老街的独立咖啡馆，记录社区的日常。",
				Latitude:        31.2304,
				Longitude:       121.4737,
				GeofenceRadiusM: 40,
			},
			{
				ID:              "cp-002",
				Title:           "里弄石库门",
				Category:        "历史人文",
				Description:     "典型的里弄石库门建筑，展示近代上海的居住文化。",
				Latitude:        31.2321,
				Longitude:       121.4778,
				GeofenceRadiusM: 60,
			},
		},
		Routes: []model.CityRoute{
			{
				ID:         "route-001",
				Name:       "老城慢行线",
				Theme:      "社区与历史",
				DistanceKm: 3.2,
				Waypoints: []model.RouteWaypoint{
					{Order: 1, Latitude: 31.2304, Longitude: 121.4737, Label: model.StrPtr("起点: 人民广场")},
					{Order: 2, Latitude: 31.2311, Longitude: 121.4759, Label: model.StrPtr("街角咖啡"), ContentPointID: model.StrPtr("cp-001")},
					{Order: 3, Latitude: 31.2321, Longitude: 121.4778, Label: model.StrPtr("石库门里弄"), ContentPointID: model.StrPtr("cp-002")},
				},
			},
		},
		Tracks: []model.Track{
			{
				UserID: "demo-user",
				Points: []model.TrackPoint{
					{Latitude: 31.2301, Longitude: 121.4731, RecordedAt: now.Add(-10 * time.Minute)},
					{Latitude: 31.2308, Longitude: 121.4749, RecordedAt: now.Add(-5 * time.Minute)},
					{Latitude: 31.2315, Longitude: 121.4762, RecordedAt: now.Add(-1 * time.Minute)},
				},
			},
		},
	}
}
