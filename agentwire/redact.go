package agentwire

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory is the closed set of stable labels a backend failure is
// reduced to before crossing the public boundary.
type ErrorCategory string

const (
	CategorySpawn          ErrorCategory = "spawn"
	CategoryWait           ErrorCategory = "wait"
	CategoryTimeout        ErrorCategory = "timeout"
	CategoryIO             ErrorCategory = "io"
	CategoryProtocol       ErrorCategory = "protocol"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
	CategoryOther          ErrorCategory = "other"
)

// Meta carries non-sensitive structural metadata attached to a redacted
// message. Values are restricted to integers (byte lengths, exit codes)
// so no raw content can travel through it.
type Meta map[string]int

// RedactedMessage formats a category label plus optional structural
// metadata into a stable, bounded message. The native error itself is
// never consulted here; callers map it to a category first.
func RedactedMessage(cat ErrorCategory, meta Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "category=%s", cat)
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%d", k, meta[k])
	}
	return b.String()
}
