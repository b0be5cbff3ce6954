package claude

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
	var cliErr *CLINotFoundError
	var procErr *ProcessError
	var protoErr *ProtocolError
	switch {
	case errors.As(err, &cliErr):
		return agentwire.CategorySpawn, nil
	case errors.As(err, &protoErr):
		return agentwire.CategoryProtocol, agentwire.Meta{"line_bytes": len(protoErr.Line)}
	case errors.As(err, &procErr):
		return agentwire.CategoryWait, agentwire.Meta{"exit_code": procErr.ExitCode}
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return agentwire.CategoryTimeout, nil
	case errors.Is(err, ErrProcessExited):
		return agentwire.CategoryWait, nil
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
