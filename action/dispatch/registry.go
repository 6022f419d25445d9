package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
)

const panicReply = "Sorry, something went wrong. Please try again."

// Registry maps action names to handlers and runs them.
type Registry struct {
	handlers  map[string]contractx.Handler
	observers []contractx.Recorder
	now       func() time.Time
}

type Option func(*Registry)

// WithRecorder adds an observer notified after every dispatch. Observer
// errors are logged and never affect the reply.
func WithRecorder(r contractx.Recorder) Option {
	return func(reg *Registry) {
		if r != nil {
			reg.observers = append(reg.observers, r)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(reg *Registry) {
		if now != nil {
			reg.now = now
		}
	}
}

func New(opts ...Option) *Registry {
	reg := &Registry{
		handlers: make(map[string]contractx.Handler, 8),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	return reg
}

func (r *Registry) Register(name string, h contractx.Handler) error {
	name = strings.TrimSpace(name)
	if name == "" || h == nil {
		return fmt.Errorf("%w: empty name or nil handler", contractx.ErrInvalidRequest)
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%w: %s", contractx.ErrDuplicateName, name)
	}
	r.handlers[name] = h
	return nil
}

func (r *Registry) RegisterAll(table map[string]contractx.Handler) error {
	for name, h := range table {
		if err := r.Register(name, h); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the registered action names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named action. The only error is ErrUnknownAction; once a
// handler is found the caller always receives a reply with a message.
func (r *Registry) Dispatch(ctx context.Context, name string, tracker *statex.Tracker) (contractx.Reply, error) {
	h, ok := r.handlers[name]
	if !ok {
		return contractx.Reply{}, fmt.Errorf("%w for name '%s'", contractx.ErrUnknownAction, name)
	}
	if tracker == nil {
		tracker = statex.NewTracker("", nil, "")
	}

	logger := zerolog.Ctx(ctx).With().Str("action", name).Str("sender_id", tracker.SenderID).Logger()
	ctx = logger.WithContext(ctx)

	start := r.now()
	out := r.run(ctx, name, h, tracker)
	elapsed := r.now().Sub(start)

	logger.Info().
		Str("outcome", string(out.Outcome)).
		Dur("duration", elapsed).
		Msg("action dispatched")

	inv := contractx.Invocation{
		SenderID: tracker.SenderID,
		Action:   name,
		Outcome:  out.Outcome,
		Duration: elapsed,
		At:       start.UTC(),
	}
	for _, obs := range r.observers {
		if err := obs.Record(ctx, inv); err != nil {
			logger.Warn().Err(err).Msg("record invocation")
		}
	}
	return out, nil
}

func (r *Registry) run(ctx context.Context, name string, h contractx.Handler, tracker *statex.Tracker) (out contractx.Reply) {
	defer func() {
		if rec := recover(); rec != nil {
			zerolog.Ctx(ctx).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("action panicked")
			out = contractx.Reply{Text: panicReply, Outcome: contractx.OutcomePanic}
		}
	}()

	out = h(ctx, tracker)
	if strings.TrimSpace(out.Text) == "" {
		zerolog.Ctx(ctx).Error().Str("action", name).Msg("action produced an empty message")
		out.Text = panicReply
	}
	if out.Outcome == "" {
		out.Outcome = contractx.OutcomeOK
	}
	return out
}
