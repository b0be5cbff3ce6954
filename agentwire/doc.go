// Package agentwire defines the unified envelope shared by all agent
// backends: the open-set agent identity, the capability model, the run
// request, the normalized event and completion types, and the error
// taxonomy exposed to callers.
//
// # Background
//
// Each coding-agent CLI (claude, codex) has its own argv shape, JSONL
// schema, and process lifecycle. The backend adapter packages translate
// their native vocabularies into the types defined here, so a caller can
// issue one uniform "run a prompt" request against any registered agent
// and consume a single normalized stream.
//
// # Design
//
// Key choices:
//
//   - Open-set identity: Kind is a validated string newtype rather than a
//     closed enum. New backends register at runtime without touching this
//     package.
//
//   - Capability-gated extensions: every backend-specific request knob is
//     a namespaced extension key that must appear verbatim in the
//     backend's advertised capability set. Unknown keys are rejected
//     before any process is spawned.
//
//   - Bounded, redacted output: every string and structured field crossing
//     the package boundary is size-bounded with a deterministic
//     truncation or replacement marker, and backend error messages are
//     reduced to stable category labels plus structural metadata. Raw
//     process output never appears in a Message field.
//
//   - Closed event kinds with stable fields: the Kind enumeration is
//     closed and each kind pins down which of the optional fields are
//     set, so consumers can rely on field presence without inspecting
//     backend-specific payloads.
package agentwire
