package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coderelay/agentgw/agentwire"
)

// echoAdapter replays a fixed script of output lines as text events and
// resolves with a fixed exit code. It advertises streaming plus one
// backend-scoped capability so registry validation has something to
// check.
type echoAdapter struct {
	kind  agentwire.Kind
	caps  agentwire.Capabilities
	lines []string
	exit  int
}

func newEchoAdapter(lines ...string) *echoAdapter {
	return &echoAdapter{
		kind: echoKind,
		caps: agentwire.NewCapabilities(
			agentwire.CapabilityRun,
			agentwire.CapabilityStreaming,
			agentwire.Capability("backend.echo.reverb"),
		),
		lines: lines,
	}
}

func (a *echoAdapter) Kind() agentwire.Kind                 { return a.kind }
func (a *echoAdapter) Capabilities() agentwire.Capabilities { return a.caps }

func (a *echoAdapter) Run(ctx context.Context, req agentwire.RunRequest) (*RunHandle, error) {
	if req.Prompt == "" {
		return nil, &agentwire.InvalidRequestError{Reason: "empty prompt"}
	}
	handle, prod := NewRun(0)
	go func() {
		final := ""
		for _, line := range a.lines {
			prod.Emit(agentwire.NewTextOutput(a.kind, "assistant", line))
			final = line
		}
		prod.FinishEvents()
		prod.Resolve(agentwire.NewCompletion(a.exit, final, nil))
	}()
	return handle, nil
}

func TestRegisterAndResolve(t *testing.T) {
	g := New()
	a := newEchoAdapter("hi")
	if err := g.Register(a); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	got, ok := g.Resolve(echoKind)
	if !ok || got != Adapter(a) {
		t.Fatalf("Resolve = %v, %v", got, ok)
	}
}

func TestRegisterDuplicateKind(t *testing.T) {
	g := New()
	if err := g.Register(newEchoAdapter()); err != nil {
		t.Fatalf("first Register error = %v", err)
	}
	if err := g.Register(newEchoAdapter()); err == nil {
		t.Fatal("second Register succeeded, want error")
	}
}

func TestRegisterForeignNamespace(t *testing.T) {
	g := New()
	a := newEchoAdapter()
	a.caps = agentwire.NewCapabilities(
		agentwire.CapabilityRun,
		agentwire.Capability("backend.claude.model"),
	)
	if err := g.Register(a); err == nil {
		t.Fatal("Register accepted a capability outside the adapter's namespace")
	}
}

func TestCapabilitiesReturnsCopy(t *testing.T) {
	g := New()
	if err := g.Register(newEchoAdapter()); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	caps, ok := g.Capabilities(echoKind)
	if !ok {
		t.Fatal("Capabilities: kind not found")
	}
	delete(caps, agentwire.CapabilityStreaming)
	caps2, _ := g.Capabilities(echoKind)
	if !caps2.Has(agentwire.CapabilityStreaming) {
		t.Fatal("mutating the returned set leaked into the registry")
	}
}

func TestCapabilitiesUnknownKind(t *testing.T) {
	g := New()
	if _, ok := g.Capabilities(agentwire.MustKind("nope")); ok {
		t.Fatal("Capabilities reported an unregistered kind")
	}
}

func TestRunUnknownBackend(t *testing.T) {
	g := New()
	_, err := g.Run(context.Background(), agentwire.MustKind("ghost"), agentwire.RunRequest{Prompt: "hi"})
	var ube *agentwire.UnknownBackendError
	if !errors.As(err, &ube) {
		t.Fatalf("error = %v, want *UnknownBackendError", err)
	}
	if ube.Agent.String() != "ghost" {
		t.Fatalf("Agent = %q, want ghost", ube.Agent)
	}
}

func TestRunRejectionPassesThrough(t *testing.T) {
	g := New()
	if err := g.Register(newEchoAdapter("hi")); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	_, err := g.Run(context.Background(), echoKind, agentwire.RunRequest{})
	var ire *agentwire.InvalidRequestError
	if !errors.As(err, &ire) {
		t.Fatalf("error = %v, want *InvalidRequestError", err)
	}
}

// TestRunEndToEnd drives one full run through the gateway: the scripted
// backend emits three lines, the consumer sees three in-order events,
// and the completion carries the backend's exit status.
func TestRunEndToEnd(t *testing.T) {
	g := New()
	a := newEchoAdapter("one", "two", "three")
	if err := g.Register(a); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	handle, err := g.Run(context.Background(), echoKind, agentwire.RunRequest{Prompt: "speak"})
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}

	var texts []string
	for ev := range handle.Events() {
		if ev.Kind != agentwire.EventTextOutput {
			t.Fatalf("event kind = %q, want text_output", ev.Kind)
		}
		if ev.Agent != echoKind {
			t.Fatalf("event agent = %q, want echo", ev.Agent)
		}
		texts = append(texts, ev.Text)
	}
	if len(texts) != 3 || texts[0] != "one" || texts[1] != "two" || texts[2] != "three" {
		t.Fatalf("texts = %v", texts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c, err := handle.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait error = %v", err)
	}
	if c.ExitCode != 0 || c.FinalText != "three" {
		t.Fatalf("completion = %+v", c)
	}
}
