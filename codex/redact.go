package codex

import (
	"context"
	"errors"

	"github.com/coderelay/agentgw/agentwire"
)

// redactError is the total mapping from the package's closed native
// error set to a safe category plus structural metadata. Every variant
// is handled explicitly; the final branch maps anything unexpected to
// the "other" category and forwards nothing from the error itself.
func redactError(err error) (agentwire.ErrorCategory, agentwire.Meta) {
	var spawnErr *SpawnError
	var waitErr *WaitError
	var parseErr *ParseError
	switch {
	case errors.As(err, &spawnErr):
		return agentwire.CategorySpawn, nil
	case errors.As(err, &parseErr):
		return agentwire.CategoryProtocol, agentwire.Meta{"line_bytes": len(parseErr.Line)}
	case errors.As(err, &waitErr):
		return agentwire.CategoryWait, nil
	case errors.Is(err, context.DeadlineExceeded):
		return agentwire.CategoryTimeout, nil
	case errors.Is(err, ErrStreamClosed):
		return agentwire.CategoryIO, nil
	default:
		return agentwire.CategoryOther, nil
	}
}

// RedactError reduces a native error to its stable, bounded public
// message.
func RedactError(err error) string {
	cat, meta := redactError(err)
	return agentwire.RedactedMessage(cat, meta)
}
