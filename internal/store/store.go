package store

import (
	"errors"
	"sync"

	"backend-citywalk/internal/model"
)

var ErrNotFound = errors.New("not found")

// Seed is the initial content of a Store.
type Seed struct {
	ContentPoints []model.ContentPoint
	Routes        []model.CityRoute
	Tracks        []model.Track
}

// Store holds the content points, routes and tracks of one process.
// Content points and routes are fixed after construction; tracks are
// append-only. All methods are safe for concurrent use, and values passed in
// or handed out never share memory with the stored collections.
type Store struct {
	mu            sync.RWMutex
	contentPoints []model.ContentPoint
	routes        []model.CityRoute
	tracks        []model.Track
}

func New(seed Seed) *Store {
	return &Store{
		contentPoints: cloneAll(seed.ContentPoints, cloneContentPoint),
		routes:        cloneAll(seed.Routes, cloneRoute),
		tracks:        cloneAll(seed.Tracks, cloneTrack),
	}
}

func (s *Store) ContentPoints() []model.ContentPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.contentPoints, cloneContentPoint)
}

func (s *Store) ContentPoint(id string) (model.ContentPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cp := range s.contentPoints {
		if cp.ID == id {
			return cloneContentPoint(cp), nil
		}
	}
	return model.ContentPoint{}, ErrNotFound
}

func (s *Store) Routes() []model.CityRoute {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.routes, cloneRoute)
}

func (s *Store) Route(id string) (model.CityRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.routes {
		if r.ID == id {
			return cloneRoute(r), nil
		}
	}
	return model.CityRoute{}, ErrNotFound
}

// Tracks returns every track when userID is nil, otherwise the tracks whose
// UserID equals *userID. Insertion order is preserved.
func (s *Store) Tracks(userID *string) []model.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Track, 0, len(s.tracks))
	for _, t := range s.tracks {
		if userID != nil && t.UserID != *userID {
			continue
		}
		out = append(out, cloneTrack(t))
	}
	return out
}

// AppendTrack stores a copy of t; later writes to t.Points do not reach the store.
func (s *Store) AppendTrack(t model.Track) {
	t = cloneTrack(t)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = append(s.tracks, t)
}

func (s *Store) TrackCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}
