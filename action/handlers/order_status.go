package handlers

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
)

func (a *Actions) GetOrderStatus(ctx context.Context, tr *statex.Tracker) contractx.Reply {
	orderID := tr.Text("order_id")
	if orderID == "" {
		return reply(
			"I need your order ID to track your order. Could you please provide it?",
			contractx.OutcomeMissingSlot,
		)
	}

	resp, err := a.backend.GetOrder(ctx, orderID)
	switch {
	case err != nil:
		logBackendFailure(ctx, ActionGetOrderStatus, err)
		return reply(fmt.Sprintf("Sorry, something went wrong: %v", err), contractx.OutcomeUnavailable)
	case !resp.OK():
		logBackendStatus(ctx, ActionGetOrderStatus, resp)
		return reply("Sorry, I couldn't find your order. Please check the order ID.", contractx.OutcomeRejected)
	}

	status := resp.String("status", "unknown")
	return reply(fmt.Sprintf(
		"%s Your order status: %s\nEstimated time: %s minutes",
		Glyph(status),
		status,
		resp.String("estimated_time", "unknown"),
	), contractx.OutcomeOK)
}
