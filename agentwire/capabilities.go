package agentwire

import (
	"fmt"
	"sort"
	"strings"
)

// Capability is a namespaced capability id. Core ids use the reserved
// "core." prefix; backend-specific ids are prefixed with the owning
// backend's kind, e.g. "backend.claude.model".
type Capability string

// Core capability ids shared across backends.
const (
	// CapabilityRun is advertised by every backend.
	CapabilityRun Capability = "core.run"

	// CapabilityStreaming marks backends that deliver events live as the
	// underlying process produces them. Buffered backends omit it and
	// deliver the full event list after exit.
	CapabilityStreaming Capability = "core.streaming"
)

const (
	corePrefix    = "core."
	backendPrefix = "backend."
)

// Capabilities is the set of capability ids a backend advertises.
type Capabilities map[Capability]struct{}

// NewCapabilities builds a set from the given ids.
func NewCapabilities(caps ...Capability) Capabilities {
	set := make(Capabilities, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether the set contains c.
func (s Capabilities) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capability ids in sorted order.
func (s Capabilities) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a copy of the set.
func (s Capabilities) Clone() Capabilities {
	out := make(Capabilities, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// ValidFor checks the namespace rule: every id must be either core.* or
// backend.<kind>.* for the owning backend. A backend claiming another
// backend's namespace is rejected at registration time.
func (s Capabilities) ValidFor(kind Kind) error {
	own := backendPrefix + kind.String() + "."
	for _, c := range s.List() {
		id := string(c)
		switch {
		case strings.HasPrefix(id, corePrefix) && len(id) > len(corePrefix):
		case strings.HasPrefix(id, own) && len(id) > len(own):
		default:
			return fmt.Errorf("capability %q is outside namespace %q", id, own+"*")
		}
	}
	return nil
}
