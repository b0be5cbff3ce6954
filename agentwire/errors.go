package agentwire

import "fmt"

// UnknownBackendError reports a run request for a kind with no registered
// adapter.
type UnknownBackendError struct {
	Agent Kind
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend %q", e.Agent)
}

// UnsupportedCapabilityError reports a request that used an extension or
// operation the backend does not advertise.
type UnsupportedCapabilityError struct {
	Agent      Kind
	Capability Capability
}

func (e *UnsupportedCapabilityError) Error() string {
	return fmt.Sprintf("backend %q does not support capability %q", e.Agent, e.Capability)
}

// InvalidKindError reports a malformed agent identity.
type InvalidKindError struct {
	Value string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid agent kind %q: must match ^[a-z][a-z0-9_]*$", e.Value)
}

// InvalidRequestError reports malformed request input, caught before any
// process is spawned.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// BackendError reports a failure that happened after spawn: process,
// I/O, timeout, or protocol-level malfunction. Message is always a
// redacted category summary, never raw process output, and the error
// deliberately carries no cause chain that could leak one.
type BackendError struct {
	Agent    Kind
	Category ErrorCategory
	Message  string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %q: %s", e.Agent, e.Message)
}
