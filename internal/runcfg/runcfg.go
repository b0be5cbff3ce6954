// Package runcfg implements the request/adapter/ambient precedence rules
// for per-run effective configuration, shared by all backend adapters.
package runcfg

import (
	"os"
	"time"
)

// WorkDir resolves the effective working directory: request value, else
// adapter default, else the current directory of the calling process.
func WorkDir(req, def string) string {
	if req != "" {
		return req
	}
	if def != "" {
		return def
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Timeout resolves the effective timeout: request value, else adapter
// default, else zero meaning no timeout. There is no hidden global
// default.
func Timeout(req, def time.Duration) time.Duration {
	if req > 0 {
		return req
	}
	if def > 0 {
		return def
	}
	return 0
}

// MergeEnv merges adapter default environment overrides with request
// overrides, request keys winning. The result is a fresh map applied to
// the spawned process only; the inputs and the calling process's
// environment are never mutated.
func MergeEnv(def, req map[string]string) map[string]string {
	if len(def) == 0 && len(req) == 0 {
		return nil
	}
	merged := make(map[string]string, len(def)+len(req))
	for k, v := range def {
		merged[k] = v
	}
	for k, v := range req {
		merged[k] = v
	}
	return merged
}
