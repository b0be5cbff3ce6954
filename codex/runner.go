package codex

import "context"

// SandboxMode controls the sandbox policy passed to the CLI.
type SandboxMode string

const (
	SandboxReadOnly       SandboxMode = "read-only"
	SandboxWorkspaceWrite SandboxMode = "workspace-write"
	SandboxFullAccess     SandboxMode = "danger-full-access"
)

// Invocation carries the effective per-run parameters handed to the
// wrapper. Env applies to the spawned process only.
type Invocation struct {
	Prompt  string
	WorkDir string
	Model   string
	Sandbox SandboxMode
	Env     map[string]string
}

// Runner spawns the codex CLI, waits for exit and returns the parsed
// item list. Argument construction, binary discovery and JSONL parsing
// live behind this seam. Cancelling the context terminates the process;
// Exec then returns whatever was collected plus the transport error.
type Runner interface {
	Exec(ctx context.Context, inv Invocation) (*ExecResult, error)
}
