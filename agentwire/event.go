package agentwire

import "fmt"

// EventKind is the closed enumeration of normalized event kinds.
type EventKind string

const (
	EventTextOutput EventKind = "text_output"
	EventToolCall   EventKind = "tool_call"
	EventToolResult EventKind = "tool_result"
	EventStatus     EventKind = "status"
	EventError      EventKind = "error"
	EventUnknown    EventKind = "unknown"
)

// Event is one normalized item of agent progress.
//
// Field presence is pinned by Kind (the stable-field rules):
//
//   - EventTextOutput sets Text and never Message.
//   - EventStatus and EventError set Message and never Text. An error
//     event's Message is always redacted-safe.
//   - EventToolCall, EventToolResult and EventUnknown never set Text;
//     their payload, if any, lives in Data.
//
// All fields are bounded; use the New* constructors, which apply the
// bounds deterministically.
type Event struct {
	Agent   Kind           `json:"agent_kind"`
	Kind    EventKind      `json:"kind"`
	Channel string         `json:"channel,omitempty"`
	Text    string         `json:"text,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// NewTextOutput builds a bounded text_output event.
func NewTextOutput(agent Kind, channel, text string) Event {
	return Event{
		Agent:   agent,
		Kind:    EventTextOutput,
		Channel: BoundChannel(channel),
		Text:    BoundText(text, MaxTextBytes),
	}
}

// NewStatus builds a bounded status event.
func NewStatus(agent Kind, message string) Event {
	return Event{
		Agent:   agent,
		Kind:    EventStatus,
		Message: BoundMessage(message, MaxMessageBytes),
	}
}

// NewError builds a bounded error event. The message must already be
// redacted; this constructor only enforces the size bound.
func NewError(agent Kind, message string) Event {
	return Event{
		Agent:   agent,
		Kind:    EventError,
		Message: BoundMessage(message, MaxMessageBytes),
	}
}

// NewToolCall builds a bounded tool_call event.
func NewToolCall(agent Kind, channel string, data map[string]any) Event {
	return Event{
		Agent:   agent,
		Kind:    EventToolCall,
		Channel: BoundChannel(channel),
		Data:    BoundData(data, MaxDataBytes),
	}
}

// NewToolResult builds a bounded tool_result event.
func NewToolResult(agent Kind, channel string, data map[string]any) Event {
	return Event{
		Agent:   agent,
		Kind:    EventToolResult,
		Channel: BoundChannel(channel),
		Data:    BoundData(data, MaxDataBytes),
	}
}

// NewUnknownEvent builds a bounded unknown event for native items the
// backend's mapping table does not recognize.
func NewUnknownEvent(agent Kind, data map[string]any) Event {
	return Event{
		Agent: agent,
		Kind:  EventUnknown,
		Data:  BoundData(data, MaxDataBytes),
	}
}

// Validate checks the stable-field rules.
func (e Event) Validate() error {
	switch e.Kind {
	case EventTextOutput:
		if e.Text == "" || e.Message != "" {
			return fmt.Errorf("text_output event must set text and not message")
		}
	case EventStatus, EventError:
		if e.Message == "" || e.Text != "" {
			return fmt.Errorf("%s event must set message and not text", e.Kind)
		}
	case EventToolCall, EventToolResult, EventUnknown:
		if e.Text != "" {
			return fmt.Errorf("%s event must not set text", e.Kind)
		}
	default:
		return fmt.Errorf("unrecognized event kind %q", e.Kind)
	}
	return nil
}
