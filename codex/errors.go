package codex

import (
	"errors"
	"fmt"
)

// ErrStreamClosed indicates the process closed its output pipe before
// reporting a terminal item.
var ErrStreamClosed = errors.New("output stream closed unexpectedly")

// SpawnError indicates the codex binary could not be started.
type SpawnError struct {
	Cause error
	Path  string
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q: %v", e.Path, e.Cause)
}

func (e *SpawnError) Unwrap() error {
	return e.Cause
}

// WaitError indicates waiting on the process failed. Stderr holds raw
// process output and must never be forwarded.
type WaitError struct {
	Cause  error
	Stderr string
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("wait: %v", e.Cause)
}

func (e *WaitError) Unwrap() error {
	return e.Cause
}

// ParseError indicates a JSONL line could not be decoded. Line holds
// the raw offending content; only its byte length may be surfaced
// publicly.
type ParseError struct {
	Cause error
	Line  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse line: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
