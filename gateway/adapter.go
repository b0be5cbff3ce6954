// Package gateway routes run requests to registered backend adapters and
// owns the consumer-facing run handle: a bounded event stream paired
// with a completion that cannot resolve before the stream is final.
package gateway

import (
	"context"

	"github.com/coderelay/agentgw/agentwire"
)

// Adapter is the pluggable contract implemented per agent backend.
// Adding a new backend means implementing this interface and registering
// it under its kind.
type Adapter interface {
	// Kind returns the backend's identity.
	Kind() agentwire.Kind

	// Capabilities returns the backend's advertised capability set.
	Capabilities() agentwire.Capabilities

	// Run validates req against the capability set, spawns the backend
	// and returns a handle for the normalized stream and completion.
	// Validation failures return before any process is spawned.
	Run(ctx context.Context, req agentwire.RunRequest) (*RunHandle, error)
}
