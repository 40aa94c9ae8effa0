package metrics

import (
	"strconv"
	"time"

	"backend-citywalk/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for TrackIngestRejected.
const (
	ReasonIdentityMismatch = "identity_mismatch"
	ReasonInvalidBody      = "invalid_body"
)

var (
	TracksIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "citywalk_tracks_ingested_total",
			Help: "Total number of tracks accepted",
		},
	)

	TrackPointsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "citywalk_track_points_received_total",
			Help: "Total number of track points in accepted tracks",
		},
	)

	TrackIngestRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citywalk_track_ingest_rejected_total",
			Help: "Total number of rejected track uploads",
		},
		[]string{"reason"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citywalk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citywalk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "citywalk_stream_clients",
			Help: "Current number of connected live track feed clients",
		},
	)
)

func RecordTrackIngested(points int) {
	TracksIngested.Inc()
	TrackPointsReceived.Add(float64(points))
}

func RecordTrackRejected(reason string) {
	TrackIngestRejected.WithLabelValues(reason).Inc()
}

// Middleware records request counts and latency labelled by the matched
// route pattern, so path parameters do not explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = logging.StatusFromError(err)
		}
		route := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
