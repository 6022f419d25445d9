package handlers

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
)

const (
	FallbackPhone   = cafePhone
	FallbackEmail   = "hello@sakshicafe.com"
	FallbackAddress = "[Cafe Address]"
	FallbackHours   = "10 AM - 10 PM"
)

func (a *Actions) ProvideContactInfo(ctx context.Context, _ *statex.Tracker) contractx.Reply {
	resp, err := a.backend.GetContactInfo(ctx)
	switch {
	case err != nil:
		logBackendFailure(ctx, ActionProvideContactInfo, err)
		return reply(contactBlock(FallbackPhone, FallbackEmail, FallbackAddress, FallbackHours), contractx.OutcomeUnavailable)
	case !resp.OK():
		logBackendStatus(ctx, ActionProvideContactInfo, resp)
		return reply(contactBlock(FallbackPhone, FallbackEmail, FallbackAddress, FallbackHours), contractx.OutcomeRejected)
	}

	return reply(contactBlock(
		resp.String("phone", FallbackPhone),
		resp.String("email", FallbackEmail),
		resp.String("address", FallbackAddress),
		resp.String("hours", FallbackHours),
	), contractx.OutcomeOK)
}

func contactBlock(phone, email, address, hours string) string {
	return fmt.Sprintf("📞 Phone: %s\n📧 Email: %s\n📍 Address: %s\n⏰ Hours: %s", phone, email, address, hours)
}
