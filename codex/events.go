// Package codex adapts the Codex CLI wrapper — a buffered collaborator
// that returns the full parsed item list and exit status after the
// process exits — into the unified envelope.
package codex

// ItemType discriminates between native item kinds from the codex JSONL
// vocabulary.
type ItemType string

const (
	// ItemAgentMessage is a final or intermediate assistant message.
	ItemAgentMessage ItemType = "agent_message"
	// ItemReasoning is chain-of-thought text.
	ItemReasoning ItemType = "reasoning"
	// ItemCommandExecution is one executed shell command with its
	// captured output.
	ItemCommandExecution ItemType = "command_execution"
	// ItemTokenCount carries token usage counters.
	ItemTokenCount ItemType = "token_count"
	// ItemError is an in-stream error item emitted by the CLI.
	ItemError ItemType = "error"
)

// TokenUsage contains token usage counters.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// Item is one parsed line of codex output. A line that failed to parse
// is surfaced as an Item with Err set so a single bad line never aborts
// the run. Raw holds the decoded object for item types outside the
// known vocabulary.
type Item struct {
	Err      error
	Usage    *TokenUsage
	Raw      map[string]any
	Type     ItemType
	Text     string
	Command  string
	Output   string
	ExitCode int
}

// ExecResult is the buffered outcome of one invocation: every item the
// process produced, in order, plus its exit status. A non-zero exit
// status is a normal result.
type ExecResult struct {
	Items    []Item
	ExitCode int
}
