package handlers

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
	cafeapix "github.com/tanpawarit/cafe-action-server/pkg/cafeapi"
)

const deliveryTypeDelivery = "delivery"

func (a *Actions) ProcessOrder(ctx context.Context, tr *statex.Tracker) contractx.Reply {
	req := buildOrderRequest(tr)

	resp, err := a.backend.CreateOrder(ctx, req)
	switch {
	case err != nil:
		logBackendFailure(ctx, ActionProcessOrder, err)
		return reply(fmt.Sprintf("Sorry, something went wrong: %v", err), contractx.OutcomeUnavailable)
	case !resp.Created():
		logBackendStatus(ctx, ActionProcessOrder, resp)
		return reply("Sorry, I couldn't process your order. Please try again.", contractx.OutcomeRejected)
	}

	return reply(fmt.Sprintf(
		"Excellent! Your order has been placed. Order ID: %s\nEstimated time: %s minutes\nWe'll notify you when it's ready!",
		resp.String("id", "unknown"),
		resp.String("estimated_time", "unknown"),
	), contractx.OutcomeOK)
}

func buildOrderRequest(tr *statex.Tracker) cafeapix.OrderRequest {
	req := cafeapix.OrderRequest{
		CustomerName:  tr.TextPtr("name"),
		CustomerPhone: tr.TextPtr("phone"),
		DeliveryType:  tr.TextPtr("delivery_type"),
		PaymentMethod: tr.TextPtr("payment_method"),
		Items:         tr.List("items"),
	}
	// address only travels with delivery orders
	if tr.Text("delivery_type") == deliveryTypeDelivery {
		req.Address = tr.TextPtr("address")
	}
	return req
}
