package agentwire

import (
	"encoding/json"
	"unicode/utf8"
)

// Size limits for event and completion fields, in bytes of UTF-8.
const (
	MaxChannelBytes = 128
	MaxTextBytes    = 64 << 10
	MaxMessageBytes = 4 << 10
	MaxDataBytes    = 64 << 10
)

// TruncationMarker is appended to string fields cut at their bound.
const TruncationMarker = "…[truncated]"

// BoundChannel bounds a channel label. Channel labels are cheap
// informational fields, so an over-limit label is omitted entirely
// rather than truncated.
func BoundChannel(s string) string {
	if len(s) > MaxChannelBytes {
		return ""
	}
	return s
}

// BoundMessage truncates s to at most max bytes, cutting on a rune
// boundary and appending TruncationMarker when anything was removed.
// Oversize input is always truncated, never split across events.
func BoundMessage(s string, max int) string {
	return truncate(s, max)
}

// BoundText applies the same policy as BoundMessage to text payloads.
func BoundText(s string, max int) string {
	return truncate(s, max)
}

// BoundData bounds a structured payload by its serialized size. An
// over-limit payload is replaced wholesale with a fixed sentinel object
// carrying the original byte count; partial truncation of structured
// data would emit malformed fragments, so it is never attempted.
func BoundData(data map[string]any, max int) map[string]any {
	if data == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return map[string]any{"truncated": true}
	}
	if len(b) <= max {
		return data
	}
	return map[string]any{"truncated": true, "original_bytes": len(b)}
}

// truncate cuts s to at most max bytes on a rune boundary and marks the
// cut. max must be at least len(TruncationMarker).
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - len(TruncationMarker)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncationMarker
}
