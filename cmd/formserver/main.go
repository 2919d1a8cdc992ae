package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/validate/handler"
	"github.com/dmitrymomot/validate/pkg/config"
	"github.com/dmitrymomot/validate/pkg/httpserver"
	"github.com/dmitrymomot/validate/pkg/logger"
	"github.com/dmitrymomot/validate/pkg/store"
)

const serviceName = "formserver"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("formserver stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(append(cfg.LoggerOptions(serviceName),
		logger.WithContextExtractors(requestID),
	)...)
	logger.SetAsDefault(log)

	var validations map[string][]string
	if cfg.ValidationsFile != "" {
		v, err := config.LoadValidations(cfg.ValidationsFile)
		if err != nil {
			return err
		}
		validations = v
		log.Info("validations loaded",
			slog.String("file", cfg.ValidationsFile),
			logger.Count(len(validations)),
		)
	}

	b, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	return serve(ctx, cfg, log, validations, b)
}

// backend is an opened form store with its health check and release func.
type backend struct {
	store  store.Store
	health func(context.Context) error
	close  func(context.Context) error
}

// serve runs the HTTP API over b until ctx is done. b is released on every
// return path.
func serve(ctx context.Context, cfg config.Config, log *slog.Logger, validations map[string][]string, b backend) error {
	h, err := handler.New(b.store,
		handler.WithValidations(validations),
		handler.WithLogger(log),
		handler.WithHealthcheck(b.health),
	)
	if err != nil {
		return errors.Join(err, b.close(context.WithoutCancel(ctx)))
	}

	srv := httpserver.New(
		httpserver.WithAddr(cfg.HTTPAddr),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
		httpserver.WithLogger(log),
		httpserver.WithStopHook(b.close),
	)
	return srv.Run(ctx, h.Routes())
}

func requestID(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	return logger.RequestID(id), id != ""
}

// openStore builds the configured form store.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (backend, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := store.Connect(ctx, cfg.Redis)
		if err != nil {
			return backend{}, err
		}
		log.Info("form store ready", slog.String("store", config.StoreRedis))

		return backend{
			store:  store.NewRedisStore(client, store.WithRedisTTL(cfg.StateTTL)),
			health: store.Healthcheck(client),
			close: func(context.Context) error {
				return client.Close()
			},
		}, nil

	case config.StoreMemory:
		log.Info("form store ready",
			slog.String("store", config.StoreMemory),
			slog.Int("capacity", cfg.StoreCapacity),
		)
		return backend{
			store: store.NewMemoryStore(cfg.StoreCapacity, store.WithTTL(cfg.StateTTL)),
			close: func(context.Context) error { return nil },
		}, nil

	default:
		return backend{}, errors.New("unknown store backend: " + cfg.Store)
	}
}
