package content

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

func (s *Service) List(_ context.Context) []model.ContentPoint {
	return s.store.ContentPoints()
}

// Get returns store.ErrNotFound for unknown ids.
func (s *Service) Get(_ context.Context, id string) (model.ContentPoint, error) {
	return s.store.ContentPoint(id)
}
