package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend-citywalk/internal/config"
	"backend-citywalk/internal/db"
	"backend-citywalk/internal/logging"
	"backend-citywalk/internal/server"
	"backend-citywalk/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

// listenFunc blocks serving app until it is shut down or fails to bind.
type listenFunc func(app *fiber.App, addr string) error

func fiberListen(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := start(ctx, config.Load(), fiberListen)
	stop()
	if err != nil {
		logging.Error().Err(err).Msg("citywalk api exited with error")
		os.Exit(1)
	}
}

// start builds the process-wide dependencies from cfg and serves until ctx is done.
func start(ctx context.Context, cfg config.Config, listen listenFunc) error {
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	st := store.New(store.DefaultSeed(time.Now()))
	return serve(ctx, cfg, st, db.ConnectRedis(ctx, cfg), listen)
}

// serve runs the HTTP server over st until ctx is cancelled or listen returns,
// then releases the server, the live feed and the Redis client.
func serve(ctx context.Context, cfg config.Config, st *store.Store, rdb *redis.Client, listen listenFunc) error {
	srv := server.NewServer(cfg, st, rdb)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- listen(srv.App, cfg.ServerPort)
	}()
	logging.Info().Str("addr", cfg.ServerPort).Bool("redis", rdb != nil).Msg("citywalk api starting")

	var err error
	select {
	case <-ctx.Done():
	case err = <-listenErr:
	}

	err = errors.Join(err, release(srv, rdb))
	logging.Info().Int("tracks", st.TrackCount()).Msg("citywalk api stopped")
	return err
}

func release(srv *server.Server, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := []error{srv.App.ShutdownWithContext(ctx), srv.Close()}
	if rdb != nil {
		errs = append(errs, rdb.Close())
	}
	return errors.Join(errs...)
}
