// Package server exposes the action dispatcher over the dialogue engine's
// custom-action webhook protocol.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
)

const (
	maxRequestBodyBytes = 1 << 20
	healthCheckTimeout  = 2 * time.Second
)

type dispatcher interface {
	Dispatch(ctx context.Context, name string, tracker *statex.Tracker) (contractx.Reply, error)
	Names() []string
}

// Server handles webhook calls from the dialogue engine.
type Server struct {
	dispatcher     dispatcher
	requestTimeout time.Duration
	metrics        http.Handler
	checks         map[string]func(context.Context) error
}

type Option func(*Server)

func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealthCheck reports an optional dependency on /health. A failing check
// marks the service degraded but does not fail the probe, since replies never
// depend on it.
func WithHealthCheck(name string, check func(context.Context) error) Option {
	return func(s *Server) {
		if name != "" && check != nil {
			s.checks[name] = check
		}
	}
}

// New panics if d is nil.
func New(d dispatcher, opts ...Option) *Server {
	if d == nil {
		panic("server.New: nil dispatcher")
	}
	s := &Server{
		dispatcher:     d,
		requestTimeout: 15 * time.Second,
		checks:         make(map[string]func(context.Context) error),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.HandleHealth)
	r.Get("/actions", s.HandleActions)
	r.Post("/webhook", s.HandleWebhook)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	out := contractx.Health{Status: "ok"}
	if len(s.checks) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		out.Checks = make(map[string]string, len(s.checks))
		for name, check := range s.checks {
			if err := check(ctx); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Str("check", name).Msg("health check failed")
				out.Status = "degraded"
				out.Checks[name] = err.Error()
				continue
			}
			out.Checks[name] = "ok"
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) HandleActions(w http.ResponseWriter, _ *http.Request) {
	names := s.dispatcher.Names()
	out := make([]contractx.ActionInfo, 0, len(names))
	for _, name := range names {
		out = append(out, contractx.ActionInfo{Name: name})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleWebhook runs the action named in next_action and returns its single
// message and context updates.
func (s *Server) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var req contractx.ActionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("decode action request")
		s.writeError(w, fmt.Errorf("%w: %v", contractx.ErrInvalidRequest, err), "")
		return
	}
	if req.NextAction == "" {
		s.writeError(w, contractx.ErrMissingAction, "")
		return
	}

	tracker := req.Tracker
	if tracker.SenderID == "" {
		tracker.SenderID = req.SenderID
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	out, err := s.dispatcher.Dispatch(ctx, req.NextAction, &tracker)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("action", req.NextAction).Msg("dispatch failed")
		s.writeError(w, err, req.NextAction)
		return
	}

	events := out.Events
	if events == nil {
		events = []contractx.Event{}
	}
	writeJSON(w, http.StatusOK, contractx.ActionResponse{
		Events:    events,
		Responses: []contractx.Message{{Text: out.Text}},
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error, action string) {
	writeJSON(w, httpStatus(err), contractx.ActionError{
		Error:      errorMessage(err, action),
		ActionName: action,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
