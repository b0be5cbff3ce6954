package codex

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
var Kind = agentwire.MustKind("codex")

// Backend-specific capability ids. Each one gates exactly one extension
// key of the same name. The set deliberately omits core.streaming:
// delivery is buffered, events arrive only after the process exits.
const (
	CapabilityModel   agentwire.Capability = "backend.codex.model"
	CapabilitySandbox agentwire.Capability = "backend.codex.sandbox"
)

// ModelExtension selects the model for one run.
type ModelExtension struct {
	Name string `json:"name" jsonschema:"required,description=Model identifier passed to the CLI"`
}

// SandboxExtension sets the sandbox policy for one run.
type SandboxExtension struct {
	Mode string `json:"mode" jsonschema:"required,description=Sandbox policy,enum=read-only,enum=workspace-write,enum=danger-full-access"`
}

// Adapter translates the codex wrapper's buffered API into the unified
// envelope. Buffered delivery is still a valid backend shape; the
// capability set advertises it by omitting core.streaming.
type Adapter struct {
	runner Runner
	caps   agentwire.Capabilities
	exts   *agentwire.ExtensionRegistry
	cfg    AdapterConfig
}

// NewAdapter creates a codex adapter around runner.
func NewAdapter(runner Runner, opts ...AdapterOption) *Adapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	exts := agentwire.NewExtensionRegistry()
	agentwire.RegisterExtension[ModelExtension](exts, CapabilityModel, "Model for this run")
	agentwire.RegisterExtension[SandboxExtension](exts, CapabilitySandbox, "Sandbox policy")

	return &Adapter{
		runner: runner,
		caps: agentwire.NewCapabilities(
			agentwire.CapabilityRun,
			CapabilityModel,
			CapabilitySandbox,
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

// Run validates req, then executes the wrapper and adapts its buffered
// item list. Validation completes before any process is spawned.
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

func (a *Adapter) validate(req agentwire.RunRequest) (Invocation, time.Duration, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Invocation{}, 0, &agentwire.InvalidRequestError{Reason: "prompt is empty"}
	}

	inv := Invocation{
		Prompt:  prompt,
		WorkDir: runcfg.WorkDir(req.WorkDir, a.cfg.WorkDir),
		Model:   a.cfg.Model,
		Sandbox: a.cfg.Sandbox,
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
		case CapabilitySandbox:
			mode := SandboxMode(payload.(SandboxExtension).Mode)
			switch mode {
			case SandboxReadOnly, SandboxWorkspaceWrite, SandboxFullAccess:
				inv.Sandbox = mode
			default:
				return Invocation{}, 0, &agentwire.InvalidRequestError{
					Reason: fmt.Sprintf("extension %q: unrecognized mode", key),
				}
			}
		}
	}

	return inv, runcfg.Timeout(req.Timeout, a.cfg.Timeout), nil
}

// run executes the wrapper, then replays the buffered items through the
// forward channel in source order.
func (a *Adapter) run(ctx context.Context, inv Invocation, timeout time.Duration, p *gateway.Producer) {
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	var res *ExecResult
	done := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		select {
		case <-p.Abandoned():
			cancel()
		case <-done:
		}
		return nil
	})
	g.Go(func() error {
		defer close(done)
		var err error
		res, err = a.runner.Exec(ctx, inv)
		return err
	})
	err := g.Wait()

	if err != nil {
		p.FinishEvents()
		p.Fail(a.backendError(ctx, err))
		return
	}

	finalText := ""
	forwarding := true
	for _, item := range res.Items {
		if item.Type == ItemAgentMessage && item.Err == nil {
			// Deterministic final answer: the last agent message wins.
			finalText = item.Text
		}
		if !forwarding {
			continue
		}
		for _, mapped := range a.mapItem(item) {
			if !p.Emit(mapped) {
				forwarding = false
				break
			}
		}
	}
	p.FinishEvents()
	p.Resolve(agentwire.NewCompletion(res.ExitCode, finalText, usageData(res.Items)))
}

// mapItem is the deterministic table from the native item vocabulary to
// envelope events. A command execution produces two events, the call
// and its result; unrecognized item types fall through to unknown.
func (a *Adapter) mapItem(item Item) []agentwire.Event {
	if item.Err != nil {
		return []agentwire.Event{agentwire.NewError(Kind, RedactError(item.Err))}
	}
	switch item.Type {
	case ItemAgentMessage:
		if item.Text == "" {
			return nil
		}
		return []agentwire.Event{agentwire.NewTextOutput(Kind, "assistant", item.Text)}
	case ItemReasoning:
		if item.Text == "" {
			return nil
		}
		return []agentwire.Event{agentwire.NewTextOutput(Kind, "reasoning", item.Text)}
	case ItemCommandExecution:
		return []agentwire.Event{
			agentwire.NewToolCall(Kind, "tool", map[string]any{
				"name":    "shell",
				"command": item.Command,
			}),
			agentwire.NewToolResult(Kind, "tool", map[string]any{
				"name":      "shell",
				"exit_code": item.ExitCode,
				"output":    item.Output,
			}),
		}
	case ItemTokenCount:
		return []agentwire.Event{agentwire.NewStatus(Kind, "token usage updated")}
	case ItemError:
		// The item's message is process output; only its category label
		// crosses the boundary.
		cat := agentwire.CategoryOther
		return []agentwire.Event{agentwire.NewError(Kind, agentwire.RedactedMessage(cat, agentwire.Meta{
			"message_bytes": len(item.Text),
		}))}
	default:
		return []agentwire.Event{agentwire.NewUnknownEvent(Kind, item.Raw)}
	}
}

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

func usageData(items []Item) map[string]any {
	var usage TokenUsage
	seen := false
	for _, item := range items {
		if item.Type == ItemTokenCount && item.Usage != nil {
			usage = *item.Usage
			seen = true
		}
	}
	if !seen {
		return nil
	}
	return map[string]any{
		"input_tokens":  usage.InputTokens,
		"output_tokens": usage.OutputTokens,
	}
}

var _ gateway.Adapter = (*Adapter)(nil)
