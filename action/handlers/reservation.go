package handlers

import (
	"context"
	"fmt"
	"strconv"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
	cafeapix "github.com/tanpawarit/cafe-action-server/pkg/cafeapi"
)

const defaultPartySize = 2

func (a *Actions) ConfirmReservation(ctx context.Context, tr *statex.Tracker) contractx.Reply {
	req := cafeapix.ReservationRequest{
		Name:      tr.TextPtr("name"),
		PartySize: tr.PositiveInt("party_size", defaultPartySize),
		Date:      tr.TextPtr("date"),
		Time:      tr.TextPtr("time"),
	}

	resp, err := a.backend.CreateReservation(ctx, req)
	switch {
	case err != nil:
		logBackendFailure(ctx, ActionConfirmReservation, err)
		return reply(
			fmt.Sprintf("Sorry, something went wrong: %v. Please call us at %s", err, cafePhone),
			contractx.OutcomeUnavailable,
		)
	case !resp.Created():
		logBackendStatus(ctx, ActionConfirmReservation, resp)
		return reply(
			"Sorry, I couldn't complete your reservation. Please try again or call us directly.",
			contractx.OutcomeRejected,
		)
	}

	return reply(fmt.Sprintf(
		"Perfect! I've booked a table for %s on %s at %s. Your reservation ID is %s. We look forward to seeing you!",
		strconv.Itoa(req.PartySize),
		tr.Text("date"),
		tr.Text("time"),
		resp.String("id", "unknown"),
	), contractx.OutcomeOK)
}
