package agentwire

// Completion is the terminal result of a run.
//
// A non-zero exit status is a successful completion carrying that
// status; completion failure (a *BackendError from the run handle) is
// reserved for transport-level malfunctions such as spawn failures,
// timeouts, or unexpected stream closure.
type Completion struct {
	// ExitCode is the agent process exit status.
	ExitCode int `json:"exit_code"`

	// FinalText is the deterministically derived final answer, if the
	// backend produced one. Bounded like event text.
	FinalText string `json:"final_text,omitempty"`

	// Data carries bounded structured completion metadata (usage
	// counters and the like).
	Data map[string]any `json:"data,omitempty"`
}

// NewCompletion builds a bounded completion.
func NewCompletion(exitCode int, finalText string, data map[string]any) Completion {
	return Completion{
		ExitCode:  exitCode,
		FinalText: BoundText(finalText, MaxTextBytes),
		Data:      BoundData(data, MaxDataBytes),
	}
}
