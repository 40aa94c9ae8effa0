package tracking

import (
	"context"
	"errors"
	"fmt"

	"backend-citywalk/internal/logging"
	"backend-citywalk/internal/metrics"
	"backend-citywalk/internal/model"
	"backend-citywalk/internal/shared/geo"
	"backend-citywalk/internal/store"
	"backend-citywalk/internal/stream"

	"github.com/goccy/go-json"
)

// ErrIdentityMismatch is returned when the caller-asserted user differs from
// the user_id inside the uploaded track.
var ErrIdentityMismatch = errors.New("identity mismatch")

type Service struct {
	store *store.Store
	hub   *stream.Hub
}

// NewService wires the track flow to st. hub may be nil, in which case
// accepted tracks are not published to the live feed.
func NewService(st *store.Store, hub *stream.Hub) *Service {
	return &Service{store: st, hub: hub}
}

// List returns all tracks, or only those of *userID when it is non-nil.
func (s *Service) List(_ context.Context, userID *string) []model.Track {
	return s.store.Tracks(userID)
}

// Ingest appends payload unless queryUserID is set and differs from
// payload.UserID, in which case nothing is stored. Identical payloads are
// stored as many times as they are submitted.
func (s *Service) Ingest(ctx context.Context, payload model.Track, queryUserID *string) (model.TrackIngestResponse, error) {
	if queryUserID != nil && *queryUserID != payload.UserID {
		metrics.RecordTrackRejected(metrics.ReasonIdentityMismatch)
		return model.TrackIngestResponse{}, fmt.Errorf("%w: query user_id %q does not match track user_id %q",
			ErrIdentityMismatch, *queryUserID, payload.UserID)
	}

	s.store.AppendTrack(payload)
	metrics.RecordTrackIngested(len(payload.Points))

	resp := model.TrackIngestResponse{
		ReceivedPoints: len(payload.Points),
		Message:        "Track accepted for " + payload.UserID,
		UserID:         payload.UserID,
		DistanceM:      geo.PathLengthM(payload.Points),
	}

	logging.Info().
		Str("user_id", payload.UserID).
		Int("points", resp.ReceivedPoints).
		Float64("distance_m", resp.DistanceM).
		Msg("track accepted")

	s.publish(ctx, payload)
	return resp, nil
}

func (s *Service) publish(ctx context.Context, track model.Track) {
	if s.hub == nil {
		return
	}
	body, err := json.Marshal(track)
	if err != nil {
		logging.Error().Err(err).Str("user_id", track.UserID).Msg("encode track for live feed")
		return
	}
	s.hub.Broadcast(ctx, track.UserID, body)
}
