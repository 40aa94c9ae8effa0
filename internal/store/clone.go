package store

import (
	"slices"

	"backend-citywalk/internal/model"
)

// cloneAll always returns a non-nil slice so empty lists encode as [].
func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, clone(v))
	}
	return out
}

func cloneContentPoint(cp model.ContentPoint) model.ContentPoint {
	cp.AudioURL = cloneStr(cp.AudioURL)
	return cp
}

func cloneRoute(r model.CityRoute) model.CityRoute {
	r.Waypoints = slices.Clone(r.Waypoints)
	for i := range r.Waypoints {
		r.Waypoints[i].Label = cloneStr(r.Waypoints[i].Label)
		r.Waypoints[i].ContentPointID = cloneStr(r.Waypoints[i].ContentPointID)
	}
	return r
}

func cloneTrack(t model.Track) model.Track {
	t.Points = slices.Clone(t.Points)
	return t
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
