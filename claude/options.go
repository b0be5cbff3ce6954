package claude

import (
	"time"

	"github.com/rs/zerolog"
)

// AdapterConfig holds adapter-level defaults. Request values take
// precedence over these; these take precedence over the ambient
// process state.
type AdapterConfig struct {
	// Env holds default environment overrides for spawned processes.
	Env map[string]string

	// WorkDir is the default working directory.
	WorkDir string

	// Model is the default model when the request carries no model
	// extension.
	Model string

	// Timeout is the default per-run timeout. Zero means no timeout.
	Timeout time.Duration

	// EventBuffer is the forwarded-event channel capacity.
	EventBuffer int

	// Log is the structured logger; discards by default.
	Log zerolog.Logger
}

// AdapterOption is a functional option for configuring an Adapter.
type AdapterOption func(*AdapterConfig)

// WithDefaultWorkDir sets the default working directory.
func WithDefaultWorkDir(dir string) AdapterOption {
	return func(c *AdapterConfig) { c.WorkDir = dir }
}

// WithDefaultTimeout sets the default per-run timeout.
func WithDefaultTimeout(d time.Duration) AdapterOption {
	return func(c *AdapterConfig) { c.Timeout = d }
}

// WithDefaultEnv sets default environment overrides for spawned
// processes.
func WithDefaultEnv(env map[string]string) AdapterOption {
	return func(c *AdapterConfig) { c.Env = env }
}

// WithDefaultModel sets the default model.
func WithDefaultModel(model string) AdapterOption {
	return func(c *AdapterConfig) { c.Model = model }
}

// WithEventBuffer sets the forwarded-event channel capacity.
func WithEventBuffer(n int) AdapterOption {
	return func(c *AdapterConfig) { c.EventBuffer = n }
}

// WithLogger sets the structured logger.
func WithLogger(log zerolog.Logger) AdapterOption {
	return func(c *AdapterConfig) { c.Log = log }
}

func defaultConfig() AdapterConfig {
	return AdapterConfig{
		Model: "sonnet",
		Log:   zerolog.Nop(),
	}
}
