package claude

import "context"

// PermissionMode controls tool execution approval.
type PermissionMode string

const (
	// PermissionModeDefault prompts for each dangerous operation.
	PermissionModeDefault PermissionMode = "default"
	// PermissionModeAcceptEdits auto-approves file modifications.
	PermissionModeAcceptEdits PermissionMode = "acceptEdits"
	// PermissionModePlan reviews plan before execution.
	PermissionModePlan PermissionMode = "plan"
	// PermissionModeBypass auto-approves all tools (use with caution).
	PermissionModeBypass PermissionMode = "bypassPermissions"
)

// Invocation carries the effective per-run parameters handed to the
// wrapper. Env applies to the spawned process only.
type Invocation struct {
	Prompt         string
	WorkDir        string
	Model          string
	SystemPrompt   string
	PermissionMode PermissionMode
	Env            map[string]string
}

// TurnUsage contains token usage for a turn.
type TurnUsage struct {
	InputTokens     int
	OutputTokens    int
	CacheReadTokens int
	CostUSD         float64
}

// TurnResult is the terminal outcome of one streamed run. A non-zero
// ExitCode is a normal result, not an error; errors from Stream.Wait are
// reserved for transport failures.
type TurnResult struct {
	Text       string
	ExitCode   int
	DurationMs int64
	Usage      TurnUsage
}

// Stream is the live side of a running invocation. Events closes once
// the process has produced its final event; Wait then returns the turn
// result or the transport failure.
type Stream interface {
	Events() <-chan Event
	Wait() (*TurnResult, error)
}

// Runner spawns the Claude CLI and exposes its native event stream.
// Argument construction, binary discovery and JSONL parsing live behind
// this seam. Cancelling the context terminates the process; the stream
// still drains to completion so Wait can resolve.
type Runner interface {
	Start(ctx context.Context, inv Invocation) (Stream, error)
}
