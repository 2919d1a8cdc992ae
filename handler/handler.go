package handler

import (
	"context"
	"hash/fnv"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/validate/pkg/logger"
	"github.com/dmitrymomot/validate/pkg/store"
	"github.com/dmitrymomot/validate/pkg/validator"
)

const lockStripes = 64

// Handler serves form instances over HTTP. Each instance is a scanned field
// set plus the aggregate state of its triggers, kept in a store.Store.
type Handler struct {
	store       store.Store
	validations map[string][]string
	rules       map[string]validator.Override
	log         *slog.Logger
	newID       func() string
	now         func() time.Time
	healthcheck func(context.Context) error

	// read-modify-write of one instance is serialized per stripe
	locks [lockStripes]sync.Mutex
}

// Option configures a Handler.
type Option func(*Handler)

// WithValidations sets the explicit per-field rule lists every instance uses.
func WithValidations(v map[string][]string) Option {
	return func(h *Handler) {
		h.validations = v
	}
}

// WithRules registers custom rules and built-in overrides.
func WithRules(rules map[string]validator.Override) Option {
	return func(h *Handler) {
		h.rules = rules
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithIDGenerator overrides how instance IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(fn func() time.Time) Option {
	return func(h *Handler) {
		if fn != nil {
			h.now = fn
		}
	}
}

// WithHealthcheck sets the probe behind GET /healthz.
func WithHealthcheck(fn func(context.Context) error) Option {
	return func(h *Handler) {
		h.healthcheck = fn
	}
}

// New creates a Handler. Custom rules are checked up front, so a broken rule
// set fails here with *validator.ConfigurationError rather than per request.
func New(s store.Store, opts ...Option) (*Handler, error) {
	if s == nil {
		return nil, ErrNilStore
	}
	h := &Handler{
		store: s,
		log:   slog.Default(),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	if _, err := validator.NewRegistry(h.rules); err != nil {
		return nil, err
	}
	h.log = h.log.With(logger.Component("handler"))
	return h, nil
}

// Routes returns the HTTP routes:
//
//	GET    /healthz
//	GET    /rules
//	POST   /forms
//	GET    /forms/{id}
//	DELETE /forms/{id}
//	POST   /forms/{id}/validate
//	POST   /forms/{id}/validate/{field}
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.serve(h.health))
	r.Get("/rules", h.serve(h.listRules))
	r.Route("/forms", func(r chi.Router) {
		r.Post("/", h.serve(h.createForm))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.serve(h.getForm))
			r.Delete("/", h.serve(h.deleteForm))
			r.Post("/validate", h.serve(h.validateAll))
			r.Post("/validate/{field}", h.serve(h.validateField))
		})
	})
	return r
}

func (h *Handler) serve(fn func(r *http.Request) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := fn(r)
		if resp == nil {
			resp = h.fail(r, ErrNilResponse)
		}
		if err := resp.Render(w, r); err != nil {
			h.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}

// fail logs err at a level matching its status and renders it.
func (h *Handler) fail(r *http.Request, err error) Response {
	status, code := classify(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	datastarRequest := IsDataStar(r)
	h.log.Log(r.Context(), level, "request failed",
		slog.Int("status", status),
		slog.String("code", code),
		slog.Bool("is_datastar", datastarRequest),
		logger.Error(err),
	)
	if datastarRequest {
		return SignalsError(err)
	}
	return JSONError(err)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.log.DebugContext(r.Context(), "request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func (h *Handler) lock(id string) func() {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(id))
	mu := &h.locks[hash.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (h *Handler) newForm(fields []validator.FieldDescriptor) (*validator.Form, error) {
	return validator.New(
		validator.WithValidations(h.validations),
		validator.WithRules(h.rules),
		validator.WithFields(fields...),
		validator.WithLogger(h.log),
	)
}

func (h *Handler) health(r *http.Request) Response {
	if h.healthcheck != nil {
		if err := h.healthcheck(r.Context()); err != nil {
			return h.fail(r, HTTPError{Code: http.StatusServiceUnavailable, Key: "unhealthy", Err: err})
		}
	}
	return JSON(map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handler) listRules(r *http.Request) Response {
	registry, err := validator.NewRegistry(h.rules)
	if err != nil {
		return h.fail(r, err)
	}
	return JSON(map[string]any{
		"rules":       registry.Names(),
		"validations": h.validations,
	}, http.StatusOK)
}
