package server

import (
	"errors"

	"backend-citywalk/internal/config"
	"backend-citywalk/internal/content"
	"backend-citywalk/internal/logging"
	"backend-citywalk/internal/metrics"
	"backend-citywalk/internal/model"
	"backend-citywalk/internal/route"
	"backend-citywalk/internal/store"
	"backend-citywalk/internal/stream"
	"backend-citywalk/internal/tracking"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Store  *store.Store
	Redis  *redis.Client
	Stream *stream.Hub
}

// NewServer builds the HTTP surface over st. redisClient may be nil.
func NewServer(cfg config.Config, st *store.Store, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: logging.RequestIDKey,
	}))
	app.Use(logging.Middleware())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins(cfg.CORSAllowOrigins),
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Store:  st,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

// Close releases the live feed subscription.
func (s *Server) Close() error {
	return s.Stream.Close()
}

func registerRoutes(s *Server) {
	s.App.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Citywalk API is running"})
	})

	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(model.HealthStatus{Service: serviceName(s.Cfg), Status: "ok"})
	})

	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.App.Group("/api")
	content.RegisterRoutes(api.Group("/content-points"), content.NewService(s.Store))
	route.RegisterRoutes(api.Group("/routes"), route.NewService(s.Store))
	tracking.RegisterRoutes(api.Group("/tracks"), tracking.NewService(s.Store, s.Stream))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

// errorHandler renders every failure as {"detail": "..."}. Messages of
// unexpected errors are not exposed.
func errorHandler(c *fiber.Ctx, err error) error {
	code := logging.StatusFromError(err)
	detail := err.Error()

	var fe *fiber.Error
	if !errors.As(err, &fe) {
		detail = "Internal Server Error"
	}
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

func allowOrigins(origins string) string {
	if origins == "" {
		return "*"
	}
	return origins
}

func serviceName(cfg config.Config) string {
	if cfg.ServiceName == "" {
		return "citywalk-api"
	}
	return cfg.ServiceName
}
