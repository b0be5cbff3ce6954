// Package claude adapts the Claude CLI wrapper — a streaming
// collaborator exposing a typed event channel plus a completion result —
// into the unified envelope.
package claude

// EventType discriminates between native event kinds.
type EventType int

const (
	// EventTypeReady fires when the session is initialized.
	EventTypeReady EventType = iota
	// EventTypeText fires for streaming text chunks.
	EventTypeText
	// EventTypeThinking fires for thinking chunks.
	EventTypeThinking
	// EventTypeToolStart fires when a tool begins execution.
	EventTypeToolStart
	// EventTypeToolComplete fires when tool input is fully parsed.
	EventTypeToolComplete
	// EventTypeToolResult fires when the CLI sends back auto-executed
	// tool results.
	EventTypeToolResult
	// EventTypeTurnComplete fires when a turn finishes.
	EventTypeTurnComplete
	// EventTypeError fires on per-item failures from the wrapper.
	EventTypeError
)

// Event is the interface for all native events.
type Event interface {
	Type() EventType
}

// ReadyEvent fires when the session is initialized.
type ReadyEvent struct {
	SessionID string
	Model     string
}

// Type returns the event type.
func (e ReadyEvent) Type() EventType { return EventTypeReady }

// TextEvent contains streaming text chunks.
type TextEvent struct {
	Text string
}

// Type returns the event type.
func (e TextEvent) Type() EventType { return EventTypeText }

// ThinkingEvent contains thinking chunks.
type ThinkingEvent struct {
	Thinking string
}

// Type returns the event type.
func (e ThinkingEvent) Type() EventType { return EventTypeThinking }

// ToolStartEvent fires when a tool begins execution.
type ToolStartEvent struct {
	ID   string
	Name string
}

// Type returns the event type.
func (e ToolStartEvent) Type() EventType { return EventTypeToolStart }

// ToolCompleteEvent fires when tool input is fully parsed.
type ToolCompleteEvent struct {
	Input map[string]any
	ID    string
	Name  string
}

// Type returns the event type.
func (e ToolCompleteEvent) Type() EventType { return EventTypeToolComplete }

// ToolResultEvent fires when the CLI sends back auto-executed tool
// results.
type ToolResultEvent struct {
	Content   any
	ToolUseID string
	ToolName  string
	IsError   bool
}

// Type returns the event type.
func (e ToolResultEvent) Type() EventType { return EventTypeToolResult }

// TurnCompleteEvent fires when a turn finishes.
type TurnCompleteEvent struct {
	TurnNumber int
	DurationMs int64
	Success    bool
}

// Type returns the event type.
func (e TurnCompleteEvent) Type() EventType { return EventTypeTurnComplete }

// ErrorEvent reports a per-item failure from the wrapper, e.g. a line
// that failed to parse. The run continues past it. Err may embed raw
// process output and must never cross the envelope boundary verbatim.
type ErrorEvent struct {
	Err     error
	Context string
}

// Type returns the event type.
func (e ErrorEvent) Type() EventType { return EventTypeError }
