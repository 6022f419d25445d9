package handlers

const fallbackGlyph = "📝"

var statusGlyphs = map[string]string{
	"pending":   "⏳",
	"confirmed": "✅",
	"preparing": "👨‍🍳",
	"ready":     "📦",
	"delivered": "🚚",
	"cancelled": "❌",
}

// Glyph returns the display glyph for an order status.
func Glyph(status string) string {
	if g, ok := statusGlyphs[status]; ok {
		return g
	}
	return fallbackGlyph
}
