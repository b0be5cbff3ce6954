package claude

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coderelay/agentgw/agentwire"
	"github.com/coderelay/agentgw/gateway"
	"github.com/coderelay/agentgw/internal/runcfg"
)

// Kind is the agent identity this adapter registers under.
var Kind = agentwire.MustKind("claude")

// Backend-specific capability ids. Each one gates exactly one extension
// key of the same name.
const (
	CapabilityModel          agentwire.Capability = "backend.claude.model"
	CapabilitySystemPrompt   agentwire.Capability = "backend.claude.system_prompt"
	CapabilityPermissionMode agentwire.Capability = "backend.claude.permission_mode"
)

// ModelExtension selects the model for one run.
type ModelExtension struct {
	Name string `json:"name" jsonschema:"required,description=Model identifier passed to the CLI"`
}

// SystemPromptExtension overrides the system prompt for one run.
type SystemPromptExtension struct {
	Text string `json:"text" jsonschema:"required,description=System prompt override"`
}

// PermissionModeExtension sets the tool approval mode for one run.
type PermissionModeExtension struct {
	Mode string `json:"mode" jsonschema:"required,description=Tool approval mode,enum=default,enum=acceptEdits,enum=plan,enum=bypassPermissions"`
}

// Adapter translates the Claude wrapper's streaming API into the
// unified envelope.
type Adapter struct {
	runner Runner
	caps   agentwire.Capabilities
	exts   *agentwire.ExtensionRegistry
	cfg    AdapterConfig
}

// NewAdapter creates a Claude adapter around runner.
func NewAdapter(runner Runner, opts ...AdapterOption) *Adapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	exts := agentwire.NewExtensionRegistry()
	agentwire.RegisterExtension[ModelExtension](exts, CapabilityModel, "Model for this run")
	agentwire.RegisterExtension[SystemPromptExtension](exts, CapabilitySystemPrompt, "System prompt override")
	agentwire.RegisterExtension[PermissionModeExtension](exts, CapabilityPermissionMode, "Tool approval mode")

	return &Adapter{
		runner: runner,
		caps: agentwire.NewCapabilities(
			agentwire.CapabilityRun,
			agentwire.CapabilityStreaming,
			CapabilityModel,
			CapabilitySystemPrompt,
			CapabilityPermissionMode,
		),
		exts: exts,
		cfg:  cfg,
	}
}

// Kind returns the agent identity.
func (a *Adapter) Kind() agentwire.Kind { return Kind }

// Capabilities returns the advertised capability set.
func (a *Adapter) Capabilities() agentwire.Capabilities { return a.caps.Clone() }

// ExtensionSchema returns the advertised JSON schema for an extension
// key.
func (a *Adapter) ExtensionSchema(key agentwire.Capability) (any, bool) {
	schema, ok := a.exts.Schema(key)
	if !ok {
		return nil, false
	}
	return schema, true
}

// Run validates req, then spawns the wrapper and adapts its stream.
// Validation completes before any process is spawned; invalid input
// returns synchronously with no side effects.
func (a *Adapter) Run(ctx context.Context, req agentwire.RunRequest) (*gateway.RunHandle, error) {
	inv, timeout, err := a.validate(req)
	if err != nil {
		return nil, err
	}
	handle, prod := gateway.NewRun(a.cfg.EventBuffer)
	a.cfg.Log.Debug().Str("agent", Kind.String()).Str("run_id", handle.ID()).Msg("run accepted")
	go a.run(ctx, inv, timeout, prod)
	return handle, nil
}

// validate checks the prompt and every extension key against the
// capability set, and derives the effective invocation.
func (a *Adapter) validate(req agentwire.RunRequest) (Invocation, time.Duration, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Invocation{}, 0, &agentwire.InvalidRequestError{Reason: "prompt is empty"}
	}

	inv := Invocation{
		Prompt:  prompt,
		WorkDir: runcfg.WorkDir(req.WorkDir, a.cfg.WorkDir),
		Model:   a.cfg.Model,
		Env:     runcfg.MergeEnv(a.cfg.Env, req.Env),
	}

	keys := make([]string, 0, len(req.Extensions))
	for k := range req.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		capID := agentwire.Capability(key)
		if !a.caps.Has(capID) {
			return Invocation{}, 0, &agentwire.UnsupportedCapabilityError{Agent: Kind, Capability: capID}
		}
		payload, err := a.exts.Decode(capID, req.Extensions[key])
		if err != nil {
			return Invocation{}, 0, err
		}
		switch capID {
		case CapabilityModel:
			inv.Model = payload.(ModelExtension).Name
		case CapabilitySystemPrompt:
			inv.SystemPrompt = payload.(SystemPromptExtension).Text
		case CapabilityPermissionMode:
			mode := PermissionMode(payload.(PermissionModeExtension).Mode)
			switch mode {
			case PermissionModeDefault, PermissionModeAcceptEdits, PermissionModePlan, PermissionModeBypass:
				inv.PermissionMode = mode
			default:
				return Invocation{}, 0, &agentwire.InvalidRequestError{
					Reason: fmt.Sprintf("extension %q: unrecognized mode", key),
				}
			}
		}
	}

	return inv, runcfg.Timeout(req.Timeout, a.cfg.Timeout), nil
}

// run drains the wrapper's native stream, forwards mapped events and
// resolves completion. It is the single adapter task for one run.
func (a *Adapter) run(ctx context.Context, inv Invocation, timeout time.Duration, p *gateway.Producer) {
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	stream, err := a.runner.Start(ctx, inv)
	if err != nil {
		p.FinishEvents()
		p.Fail(a.backendError(ctx, err))
		return
	}

	drained := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		// Abandonment terminates the process early; the drain loop below
		// still runs to completion so Wait can resolve.
		select {
		case <-p.Abandoned():
			cancel()
		case <-drained:
		}
		return nil
	})
	g.Go(func() error {
		defer close(drained)
		forwarding := true
		for ev := range stream.Events() {
			if !forwarding {
				continue
			}
			for _, mapped := range a.mapEvent(ev) {
				if !p.Emit(mapped) {
					forwarding = false
					break
				}
			}
		}
		return nil
	})
	_ = g.Wait()

	result, werr := stream.Wait()
	p.FinishEvents()
	if werr != nil {
		p.Fail(a.backendError(ctx, werr))
		return
	}
	p.Resolve(agentwire.NewCompletion(result.ExitCode, result.Text, usageData(result.Usage)))
}

// mapEvent is the deterministic table from the native vocabulary to
// envelope events. Empty text deltas map to nothing; unrecognized
// native events fall through to unknown.
func (a *Adapter) mapEvent(ev Event) []agentwire.Event {
	switch e := ev.(type) {
	case ReadyEvent:
		return []agentwire.Event{agentwire.NewStatus(Kind, "session ready")}
	case TextEvent:
		if e.Text == "" {
			return nil
		}
		return []agentwire.Event{agentwire.NewTextOutput(Kind, "assistant", e.Text)}
	case ThinkingEvent:
		if e.Thinking == "" {
			return nil
		}
		return []agentwire.Event{agentwire.NewTextOutput(Kind, "thinking", e.Thinking)}
	case ToolStartEvent:
		return []agentwire.Event{agentwire.NewToolCall(Kind, "tool", map[string]any{
			"id":   e.ID,
			"name": e.Name,
		})}
	case ToolCompleteEvent:
		return []agentwire.Event{agentwire.NewToolCall(Kind, "tool", map[string]any{
			"id":    e.ID,
			"name":  e.Name,
			"input": e.Input,
		})}
	case ToolResultEvent:
		return []agentwire.Event{agentwire.NewToolResult(Kind, "tool", map[string]any{
			"id":       e.ToolUseID,
			"name":     e.ToolName,
			"content":  e.Content,
			"is_error": e.IsError,
		})}
	case TurnCompleteEvent:
		return []agentwire.Event{agentwire.NewStatus(Kind, fmt.Sprintf("turn %d complete", e.TurnNumber))}
	case ErrorEvent:
		return []agentwire.Event{agentwire.NewError(Kind, RedactError(e.Err))}
	default:
		return []agentwire.Event{agentwire.NewUnknownEvent(Kind, nil)}
	}
}

// backendError builds the transport-level failure for the completion.
// A deadline expiry always maps to the timeout category, regardless of
// which native error the cancellation surfaced as.
func (a *Adapter) backendError(ctx context.Context, err error) *agentwire.BackendError {
	cat, meta := redactError(err)
	if ctx.Err() == context.DeadlineExceeded {
		cat, meta = agentwire.CategoryTimeout, nil
	}
	return &agentwire.BackendError{
		Agent:    Kind,
		Category: cat,
		Message:  agentwire.RedactedMessage(cat, meta),
	}
}

func usageData(u TurnUsage) map[string]any {
	return map[string]any{
		"input_tokens":      u.InputTokens,
		"output_tokens":     u.OutputTokens,
		"cache_read_tokens": u.CacheReadTokens,
		"cost_usd":          u.CostUSD,
	}
}

var _ gateway.Adapter = (*Adapter)(nil)
