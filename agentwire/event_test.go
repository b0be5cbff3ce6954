package agentwire

import (
	"strings"
	"testing"
)

var testKind = MustKind("echo")

func TestConstructorsSatisfyStableFieldRules(t *testing.T) {
	events := []Event{
		NewTextOutput(testKind, "assistant", "hello"),
		NewStatus(testKind, "session ready"),
		NewError(testKind, "category=other"),
		NewToolCall(testKind, "tool", map[string]any{"name": "shell"}),
		NewToolResult(testKind, "tool", map[string]any{"exit_code": 0}),
		NewUnknownEvent(testKind, map[string]any{"type": "mystery"}),
	}
	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			t.Fatalf("%s: %v", ev.Kind, err)
		}
	}
}

func TestValidateRejectsRuleViolations(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{name: "text-without-text", ev: Event{Agent: testKind, Kind: EventTextOutput}},
		{name: "text-with-message", ev: Event{Agent: testKind, Kind: EventTextOutput, Text: "x", Message: "y"}},
		{name: "status-without-message", ev: Event{Agent: testKind, Kind: EventStatus}},
		{name: "error-with-text", ev: Event{Agent: testKind, Kind: EventError, Message: "m", Text: "x"}},
		{name: "tool-call-with-text", ev: Event{Agent: testKind, Kind: EventToolCall, Text: "x"}},
		{name: "unrecognized-kind", ev: Event{Agent: testKind, Kind: "bogus"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.ev.Validate(); err == nil {
				t.Fatal("Validate = nil, want error")
			}
		})
	}
}

func TestConstructorsApplyBounds(t *testing.T) {
	text := strings.Repeat("a", MaxTextBytes+100)
	ev := NewTextOutput(testKind, strings.Repeat("c", MaxChannelBytes+1), text)
	if len(ev.Text) > MaxTextBytes {
		t.Fatalf("text len = %d, want <= %d", len(ev.Text), MaxTextBytes)
	}
	if !strings.HasSuffix(ev.Text, TruncationMarker) {
		t.Fatal("oversize text must carry the truncation marker")
	}
	if ev.Channel != "" {
		t.Fatal("oversize channel must be omitted")
	}

	data := map[string]any{"blob": strings.Repeat("x", MaxDataBytes+1)}
	call := NewToolCall(testKind, "tool", data)
	if call.Data["truncated"] != true {
		t.Fatal("oversize data must be replaced by the sentinel")
	}
}

func TestCompletionApplyBounds(t *testing.T) {
	c := NewCompletion(7, strings.Repeat("a", MaxTextBytes+1), nil)
	if c.ExitCode != 7 {
		t.Fatalf("ExitCode = %d, want 7", c.ExitCode)
	}
	if len(c.FinalText) > MaxTextBytes {
		t.Fatalf("final text len = %d, want <= %d", len(c.FinalText), MaxTextBytes)
	}
}
