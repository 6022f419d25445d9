package handlers

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
)

// AddToCart acknowledges the item locally. Nothing is stored.
func (a *Actions) AddToCart(_ context.Context, tr *statex.Tracker) contractx.Reply {
	return reply(
		fmt.Sprintf("Added %s %s(s) to your cart!", tr.TextOr("quantity", "1"), tr.Text("item_name")),
		contractx.OutcomeOK,
	)
}
