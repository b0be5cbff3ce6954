package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/coderelay/agentgw/agentwire"
)

// DefaultEventBuffer is the capacity of the bounded channel between the
// adapter's forward step and the consumer.
const DefaultEventBuffer = 32

// RunHandle is the consumer side of one run: an event stream plus a
// gated completion.
//
// The completion gate is the safety-critical invariant here: Wait never
// returns while an emitted event is still undelivered. Completion
// releases only after both signals have fired — the backend resolved,
// and the event stream went final (every event handed to the consumer,
// or the consumer abandoned the stream via Close).
type RunHandle struct {
	id string

	// in is the bounded channel the adapter forwards into; sends block
	// when it is full.
	in chan agentwire.Event

	// events is the unbuffered consumer-facing channel. Relaying through
	// it is what lets the gate observe that every buffered event was
	// actually delivered, not merely enqueued.
	events chan agentwire.Event

	closed     chan struct{} // consumer abandoned the stream
	eventsDone chan struct{} // relay finished: delivered or abandoned+drained
	resolved   chan struct{} // backend completion observed

	res runResult // written once before resolved closes

	closeOnce sync.Once
}

type runResult struct {
	completion agentwire.Completion
	err        error
}

// Producer is the adapter-facing side of a run handle. Exactly one
// adapter task owns it for the duration of the run.
type Producer struct {
	h           *RunHandle
	finishOnce  sync.Once
	resolveOnce sync.Once
}

// NewRun creates a linked handle/producer pair. buffer <= 0 selects
// DefaultEventBuffer.
func NewRun(buffer int) (*RunHandle, *Producer) {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	h := &RunHandle{
		id:         uuid.NewString(),
		in:         make(chan agentwire.Event, buffer),
		events:     make(chan agentwire.Event),
		closed:     make(chan struct{}),
		eventsDone: make(chan struct{}),
		resolved:   make(chan struct{}),
	}
	go h.relay()
	return h, &Producer{h: h}
}

// ID returns the unique id of this run.
func (h *RunHandle) ID() string { return h.id }

// Events returns the normalized event stream. The channel closes after
// the final event has been delivered. Callers must either drain it or
// call Close; otherwise Wait blocks until its context expires.
func (h *RunHandle) Events() <-chan agentwire.Event { return h.events }

// Close abandons the event stream. It is the cancellation signal: the
// adapter best-effort terminates the underlying process and stops
// forwarding, but still drains the native source so completion resolves
// and Wait returns. Safe to call multiple times and concurrently with
// reads from Events.
func (h *RunHandle) Close() {
	h.closeOnce.Do(func() { close(h.closed) })
}

// Wait blocks until the run completes and the event stream is final,
// then returns the completion. Transport-level failures surface here as
// *agentwire.BackendError; a non-zero process exit is a successful
// completion carrying that status.
func (h *RunHandle) Wait(ctx context.Context) (agentwire.Completion, error) {
	select {
	case <-h.eventsDone:
	case <-h.closed:
	case <-ctx.Done():
		return agentwire.Completion{}, ctx.Err()
	}
	select {
	case <-h.resolved:
		return h.res.completion, h.res.err
	case <-ctx.Done():
		return agentwire.Completion{}, ctx.Err()
	}
}

// relay moves events from the bounded channel to the consumer-facing
// channel one at a time. When the consumer abandons the stream it keeps
// draining the bounded channel so a blocked Emit can never stall the
// adapter's native drain loop.
func (h *RunHandle) relay() {
	defer close(h.eventsDone)
	defer close(h.events)
	for ev := range h.in {
		select {
		case h.events <- ev:
		case <-h.closed:
			for range h.in {
			}
			return
		}
	}
}

// Emit forwards one event toward the consumer. It blocks while the
// bounded channel is full and returns false once the consumer has
// abandoned the stream; the adapter then continues draining its native
// source without forwarding.
func (p *Producer) Emit(ev agentwire.Event) bool {
	select {
	case <-p.h.closed:
		return false
	default:
	}
	select {
	case p.h.in <- ev:
		return true
	case <-p.h.closed:
		return false
	}
}

// Abandoned is closed when the consumer abandons the stream. Adapters
// watch it to best-effort terminate the underlying process.
func (p *Producer) Abandoned() <-chan struct{} { return p.h.closed }

// FinishEvents marks the event stream complete. No Emit may follow.
func (p *Producer) FinishEvents() {
	p.finishOnce.Do(func() { close(p.h.in) })
}

// Resolve records a successful completion. The first of Resolve/Fail
// wins; later calls are ignored.
func (p *Producer) Resolve(c agentwire.Completion) {
	p.resolve(runResult{completion: c})
}

// Fail records a transport-level failure.
func (p *Producer) Fail(err *agentwire.BackendError) {
	p.resolve(runResult{err: err})
}

func (p *Producer) resolve(r runResult) {
	p.resolveOnce.Do(func() {
		p.h.res = r
		close(p.h.resolved)
	})
}
