package model

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// ErrInvalidTimestamp is returned when recorded_at is not an ISO 8601 time.
var ErrInvalidTimestamp = errors.New("recorded_at is not a valid ISO 8601 timestamp")

// Layouts accepted for recorded_at. Times without an offset are taken as UTC.
var recordedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts recorded_at with or without a UTC offset. A missing or
// null recorded_at leaves RecordedAt zero so the required check rejects it.
func (p *TrackPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		RecordedAt *string `json:"recorded_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Latitude = raw.Latitude
	p.Longitude = raw.Longitude
	p.RecordedAt = time.Time{}
	if raw.RecordedAt == nil || *raw.RecordedAt == "" {
		return nil
	}
	t, err := parseRecordedAt(*raw.RecordedAt)
	if err != nil {
		return err
	}
	p.RecordedAt = t
	return nil
}

func parseRecordedAt(s string) (time.Time, error) {
	for _, layout := range recordedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
