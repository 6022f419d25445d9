package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	cafeapix "github.com/tanpawarit/cafe-action-server/pkg/cafeapi"
)

const (
	ActionConfirmReservation = "action_confirm_reservation"
	ActionGetMenuItems       = "action_get_menu_items"
	ActionAddToCart          = "action_add_to_cart"
	ActionProcessOrder       = "action_process_order"
	ActionGetOrderStatus     = "action_get_order_status"
	ActionSaveFeedback       = "action_save_feedback"
	ActionProvideContactInfo = "action_provide_contact_info"
)

const cafePhone = "+91-XXXX-XXXX"

// Actions holds the collaborators shared by every handler.
type Actions struct {
	backend contractx.Backend
	now     func() time.Time
}

type Option func(*Actions)

func WithClock(now func() time.Time) Option {
	return func(a *Actions) {
		if now != nil {
			a.now = now
		}
	}
}

func New(backend contractx.Backend, opts ...Option) *Actions {
	if backend == nil {
		panic("handlers.New: nil backend")
	}
	a := &Actions{backend: backend, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Handlers returns the action-name to handler table.
func (a *Actions) Handlers() map[string]contractx.Handler {
	return map[string]contractx.Handler{
		ActionConfirmReservation: a.ConfirmReservation,
		ActionGetMenuItems:       a.GetMenuItems,
		ActionAddToCart:          a.AddToCart,
		ActionProcessOrder:       a.ProcessOrder,
		ActionGetOrderStatus:     a.GetOrderStatus,
		ActionSaveFeedback:       a.SaveFeedback,
		ActionProvideContactInfo: a.ProvideContactInfo,
	}
}

func reply(text string, outcome contractx.Outcome) contractx.Reply {
	return contractx.Reply{Text: text, Outcome: outcome}
}

func logBackendFailure(ctx context.Context, action string, err error) {
	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("action", action).
		Str("failure_kind", cafeapix.FailureKind(err)).
		Msg("backend call failed")
}

func logBackendStatus(ctx context.Context, action string, resp *cafeapix.Response) {
	if resp == nil {
		zerolog.Ctx(ctx).Warn().Str("action", action).Msg("backend returned no response")
		return
	}
	zerolog.Ctx(ctx).Info().
		Str("action", action).
		Int("status", resp.StatusCode).
		Msg("backend returned non-success status")
}
