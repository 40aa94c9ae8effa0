package route

import (
	"context"

	"backend-citywalk/internal/model"
	"backend-citywalk/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) List(_ context.Context) []model.CityRoute {
	return s.store.Routes()
}

// Get returns the route with its waypoints in storage order, which is not
// necessarily sorted by Order.
func (s *Service) Get(_ context.Context, id string) (model.CityRoute, error) {
	return s.store.Route(id)
}
