package contract

import (
	statex "github.com/tanpawarit/cafe-action-server/action/state"
)

// Outcome categorises how an invocation ended. It never changes whether a
// message is produced.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeMissingSlot Outcome = "missing_slot"
	OutcomeRejected    Outcome = "rejected"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomePanic       Outcome = "panic"
)

// Reply is the result of one handler invocation: exactly one message plus the
// context updates the dialogue engine should apply.
type Reply struct {
	Text    string
	Events  []Event
	Outcome Outcome
}

// Event is a requested mutation of the conversation context.
type Event struct {
	Event string `json:"event"`
	Name  string `json:"name,omitempty"`
	Value any    `json:"value"`
}

// ActionRequest is the webhook payload sent by the dialogue engine.
type ActionRequest struct {
	NextAction string         `json:"next_action"`
	SenderID   string         `json:"sender_id"`
	Tracker    statex.Tracker `json:"tracker"`
	Domain     map[string]any `json:"domain,omitempty"`
	Version    string         `json:"version,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

// ActionResponse is returned to the dialogue engine.
type ActionResponse struct {
	Events    []Event   `json:"events"`
	Responses []Message `json:"responses"`
}

type ActionError struct {
	Error      string `json:"error"`
	ActionName string `json:"action_name"`
}

type ActionInfo struct {
	Name string `json:"name"`
}

// Health is the /health body. Checks lists optional dependencies by name.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
