package model

import "time"

// ContentPoint is a point of interest that can trigger narration when a
// walker enters its geofence.
type ContentPoint struct {
	ID              string  `json:"id" validate:"required"`
	Title           string  `json:"title" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	Description     string  `json:"description"`
	Latitude        float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude       float64 `json:"longitude" validate:"min=-180,max=180"`
	GeofenceRadiusM float64 `json:"geofence_radius_m" validate:"gt=0"`
	AudioURL        *string `json:"audio_url"`
}

// RouteWaypoint belongs to exactly one CityRoute. ContentPointID is a weak
// reference and is not checked against the content point collection.
type RouteWaypoint struct {
	Order          int     `json:"order" validate:"gt=0"`
	Latitude       float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64 `json:"longitude" validate:"min=-180,max=180"`
	Label          *string `json:"label"`
	ContentPointID *string `json:"content_point_id"`
}

type CityRoute struct {
	ID         string          `json:"id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Theme      string          `json:"theme"`
	DistanceKm float64         `json:"distance_km" validate:"gt=0"`
	Waypoints  []RouteWaypoint `json:"waypoints" validate:"dive"`
}

type TrackPoint struct {
	Latitude   float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64   `json:"longitude" validate:"min=-180,max=180"`
	RecordedAt time.Time `json:"recorded_at" validate:"required"`
}

// Track is one user's recorded walk. Points must be present in an upload but
// may be empty.
type Track struct {
	UserID string       `json:"user_id" validate:"required"`
	Points []TrackPoint `json:"points" validate:"required,dive"`
}

type TrackIngestResponse struct {
	ReceivedPoints int     `json:"received_points"`
	Message        string  `json:"message"`
	UserID         string  `json:"user_id"`
	DistanceM      float64 `json:"distance_m"`
}

type HealthStatus struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

// StrPtr returns a pointer to s, for optional fields in seed data and tests.
func StrPtr(s string) *string {
	return &s
}
