package state

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tracker is the read-only conversation snapshot handed to an action. It is
// owned by the dialogue engine; actions request changes through events.
type Tracker struct {
	SenderID      string         `json:"sender_id"`
	Slots         map[string]any `json:"slots"`
	LatestMessage LatestMessage  `json:"latest_message"`
}

type LatestMessage struct {
	Text   string         `json:"text"`
	Intent map[string]any `json:"intent,omitempty"`
}

func NewTracker(senderID string, slots map[string]any, latestText string) *Tracker {
	copied := make(map[string]any, len(slots))
	for k, v := range slots {
		copied[k] = v
	}
	return &Tracker{
		SenderID:      senderID,
		Slots:         copied,
		LatestMessage: LatestMessage{Text: latestText},
	}
}

/* ------------------------------ Slot access ------------------------------ */

// Slot returns the raw value of a slot. Nil values, empty strings and empty
// lists count as unset.
func (t *Tracker) Slot(name string) (any, bool) {
	if t == nil || t.Slots == nil {
		return nil, false
	}
	v, ok := t.Slots[name]
	if !ok || isEmpty(v) {
		return nil, false
	}
	return v, true
}

// Text renders a slot as display text, or "" when unset.
func (t *Tracker) Text(name string) string {
	v, ok := t.Slot(name)
	if !ok {
		return ""
	}
	return render(v)
}

// TextOr renders a slot, falling back to def when unset.
func (t *Tracker) TextOr(name, def string) string {
	if s := t.Text(name); s != "" {
		return s
	}
	return def
}

// TextPtr renders a slot, returning nil when unset so it encodes as JSON null.
func (t *Tracker) TextPtr(name string) *string {
	v, ok := t.Slot(name)
	if !ok {
		return nil
	}
	s := render(v)
	return &s
}

// PositiveInt parses a slot as a positive whole number, falling back to def
// when the slot is unset, non-numeric, fractional or not positive.
func (t *Tracker) PositiveInt(name string, def int) int {
	v, ok := t.Slot(name)
	if !ok {
		return def
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return def
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return def
	}
	return int(f)
}

// List returns a list slot, or an empty non-nil list when unset.
func (t *Tracker) List(name string) []any {
	v, ok := t.Slot(name)
	if !ok {
		return []any{}
	}
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

func (t *Tracker) LatestText() string {
	if t == nil {
		return ""
	}
	return t.LatestMessage.Text
}

/* -------------------------------- helpers -------------------------------- */

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}

func render(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case []any, map[string]any:
		raw, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(raw)
	default:
		return fmt.Sprint(x)
	}
}
