package contract

import (
	"context"
	"time"

	statex "github.com/tanpawarit/cafe-action-server/action/state"
	cafeapix "github.com/tanpawarit/cafe-action-server/pkg/cafeapi"
)

// Handler runs one action against a read-only tracker snapshot.
type Handler func(ctx context.Context, tracker *statex.Tracker) Reply

type Backend interface {
	CreateReservation(ctx context.Context, req cafeapix.ReservationRequest) (*cafeapix.Response, error)
	ListMenuItems(ctx context.Context, filter cafeapix.MenuFilter) (*cafeapix.Response, error)
	CreateOrder(ctx context.Context, req cafeapix.OrderRequest) (*cafeapix.Response, error)
	GetOrder(ctx context.Context, orderID string) (*cafeapix.Response, error)
	SubmitFeedback(ctx context.Context, req cafeapix.FeedbackRequest) (*cafeapix.Response, error)
	GetContactInfo(ctx context.Context) (*cafeapix.Response, error)
}

// Invocation describes a finished dispatch for observers.
type Invocation struct {
	SenderID string
	Action   string
	Outcome  Outcome
	Duration time.Duration
	At       time.Time
}

type Recorder interface {
	Record(ctx context.Context, inv Invocation) error
}
