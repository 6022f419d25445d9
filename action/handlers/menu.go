package handlers

import (
	"context"
	"strings"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
	cafeapix "github.com/tanpawarit/cafe-action-server/pkg/cafeapi"
)

// maxMenuItems caps how many items a single reply lists.
const maxMenuItems = 5

const menuUnavailable = "Sorry, I couldn't retrieve the menu. Please try again."

func (a *Actions) GetMenuItems(ctx context.Context, tr *statex.Tracker) contractx.Reply {
	filter := cafeapix.MenuFilter{
		Dietary:  tr.Text("dietary_preference"),
		Category: tr.Text("cuisine_type"),
	}

	resp, err := a.backend.ListMenuItems(ctx, filter)
	switch {
	case err != nil:
		logBackendFailure(ctx, ActionGetMenuItems, err)
		return reply(menuUnavailable, contractx.OutcomeUnavailable)
	case !resp.OK():
		logBackendStatus(ctx, ActionGetMenuItems, resp)
		return reply(menuUnavailable, contractx.OutcomeRejected)
	}

	items := resp.Items("items")
	if len(items) == 0 {
		return reply(
			"Sorry, no items match your preferences. Would you like to see our full menu?",
			contractx.OutcomeOK,
		)
	}
	if len(items) > maxMenuItems {
		items = items[:maxMenuItems]
	}

	var b strings.Builder
	b.WriteString("Here are our available items:\n\n")
	for _, item := range items {
		b.WriteString("• ")
		b.WriteString(item.Get("name").String())
		b.WriteString(" - ₹")
		b.WriteString(item.Get("price").String())
		b.WriteString("\n")
		if desc := item.Get("description").String(); desc != "" {
			b.WriteString("  ")
			b.WriteString(desc)
			b.WriteString("\n")
		}
	}
	return reply(b.String(), contractx.OutcomeOK)
}
