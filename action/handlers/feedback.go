package handlers

import (
	"context"
	"time"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
	cafeapix "github.com/tanpawarit/cafe-action-server/pkg/cafeapi"
)

// SaveFeedback always thanks the user; a failed submission is only logged.
func (a *Actions) SaveFeedback(ctx context.Context, tr *statex.Tracker) contractx.Reply {
	req := cafeapix.FeedbackRequest{
		Message:   tr.LatestText(),
		Timestamp: a.now().Format(time.RFC3339),
	}

	resp, err := a.backend.SubmitFeedback(ctx, req)
	switch {
	case err != nil:
		logBackendFailure(ctx, ActionSaveFeedback, err)
		return reply("Thank you for your feedback!", contractx.OutcomeUnavailable)
	case !resp.Created():
		logBackendStatus(ctx, ActionSaveFeedback, resp)
		return reply("Thank you for your feedback!", contractx.OutcomeRejected)
	}
	return reply("Thank you for your feedback! It helps us improve our service.", contractx.OutcomeOK)
}
