package agentwire

import "time"

// RunRequest describes one prompt execution against a backend.
type RunRequest struct {
	// Prompt is the instruction for the agent. Must be non-empty after
	// trimming.
	Prompt string

	// WorkDir is the working directory for the spawned process. Empty
	// means the adapter default, falling back to the current directory.
	WorkDir string

	// Timeout bounds the whole run. Zero means the adapter default, or
	// no timeout if the adapter has none.
	Timeout time.Duration

	// Env holds environment overrides applied to the spawned process
	// only. The calling process's environment is never mutated.
	Env map[string]string

	// Extensions maps namespaced, capability-gated keys to structured
	// values. Every key must appear verbatim in the backend's advertised
	// capability set; unknown keys are rejected before any process is
	// spawned.
	Extensions map[string]any
}
