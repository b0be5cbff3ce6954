package agentwire

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBoundChannel(t *testing.T) {
	if got := BoundChannel("assistant"); got != "assistant" {
		t.Fatalf("BoundChannel = %q, want unchanged", got)
	}
	over := strings.Repeat("x", MaxChannelBytes+1)
	if got := BoundChannel(over); got != "" {
		t.Fatalf("BoundChannel over limit = %q, want empty", got)
	}
	exact := strings.Repeat("x", MaxChannelBytes)
	if got := BoundChannel(exact); got != exact {
		t.Fatal("BoundChannel at limit should pass through")
	}
}

func TestBoundMessageTruncates(t *testing.T) {
	s := strings.Repeat("a", 100)
	got := BoundMessage(s, 50)
	if len(got) > 50 {
		t.Fatalf("len = %d, want <= 50", len(got))
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Fatalf("got %q, want truncation marker suffix", got)
	}
	if got := BoundMessage("short", 50); got != "short" {
		t.Fatalf("under-limit message changed: %q", got)
	}
}

func TestBoundMessageRuneSafe(t *testing.T) {
	// Multi-byte runes must never be cut mid-sequence.
	s := strings.Repeat("é", 200)
	for max := len(TruncationMarker); max < 64; max++ {
		got := BoundMessage(s, max)
		if len(got) > max {
			t.Fatalf("max=%d: len = %d", max, len(got))
		}
		if !utf8.ValidString(got) {
			t.Fatalf("max=%d: invalid UTF-8 %q", max, got)
		}
	}
}

func TestBoundDataSentinel(t *testing.T) {
	small := map[string]any{"k": "v"}
	if got := BoundData(small, MaxDataBytes); got["k"] != "v" {
		t.Fatal("under-limit data changed")
	}

	big := map[string]any{"blob": strings.Repeat("x", 256)}
	got := BoundData(big, 64)
	if got["truncated"] != true {
		t.Fatalf("got %v, want sentinel", got)
	}
	if _, ok := got["blob"]; ok {
		t.Fatal("sentinel must replace data wholesale, not partially")
	}
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal sentinel: %v", err)
	}
	if len(b) > 64 {
		t.Fatalf("sentinel serializes to %d bytes, want <= 64", len(b))
	}
	origBytes, ok := got["original_bytes"].(int)
	if !ok || origBytes <= 64 {
		t.Fatalf("original_bytes = %v, want original serialized size", got["original_bytes"])
	}
}

func TestBoundDataNil(t *testing.T) {
	if got := BoundData(nil, MaxDataBytes); got != nil {
		t.Fatalf("BoundData(nil) = %v, want nil", got)
	}
}
