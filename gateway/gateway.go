package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/coderelay/agentgw/agentwire"
)

// Gateway maps agent kinds to registered adapters and routes run
// requests. It performs no protocol logic itself. The registry is the
// only structure touched by concurrent runs; it is read-mostly and
// guarded by an RWMutex so late registration stays safe.
type Gateway struct {
	mu       sync.RWMutex
	adapters map[agentwire.Kind]Adapter
	log      zerolog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the structured logger. The default discards all
// output.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Gateway) { g.log = log }
}

// New creates an empty gateway.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		adapters: make(map[agentwire.Kind]Adapter),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register adds an adapter under its kind. Registering a kind twice is
// an error; there is no silent overwrite. The adapter's capability set
// must stay inside its own namespace.
func (g *Gateway) Register(a Adapter) error {
	kind := a.Kind()
	if _, err := agentwire.ParseKind(kind.String()); err != nil {
		return err
	}
	if err := a.Capabilities().ValidFor(kind); err != nil {
		return fmt.Errorf("register %q: %w", kind, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.adapters[kind]; exists {
		return fmt.Errorf("register %q: kind already registered", kind)
	}
	g.adapters[kind] = a
	g.log.Debug().Str("agent", kind.String()).Msg("adapter registered")
	return nil
}

// Resolve returns the adapter registered under kind.
func (g *Gateway) Resolve(kind agentwire.Kind) (Adapter, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	a, ok := g.adapters[kind]
	return a, ok
}

// Capabilities returns a copy of the capability set advertised by the
// adapter registered under kind.
func (g *Gateway) Capabilities(kind agentwire.Kind) (agentwire.Capabilities, bool) {
	a, ok := g.Resolve(kind)
	if !ok {
		return nil, false
	}
	return a.Capabilities().Clone(), true
}

// Run resolves kind and delegates to the adapter. An unregistered kind
// yields *agentwire.UnknownBackendError.
func (g *Gateway) Run(ctx context.Context, kind agentwire.Kind, req agentwire.RunRequest) (*RunHandle, error) {
	a, ok := g.Resolve(kind)
	if !ok {
		return nil, &agentwire.UnknownBackendError{Agent: kind}
	}
	handle, err := a.Run(ctx, req)
	if err != nil {
		g.log.Debug().Str("agent", kind.String()).Err(err).Msg("run rejected")
		return nil, err
	}
	g.log.Debug().Str("agent", kind.String()).Str("run_id", handle.ID()).Msg("run started")
	return handle, nil
}
