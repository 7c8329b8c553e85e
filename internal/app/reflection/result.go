package reflection

import "fmt"

// Failure classifies why a generation produced no model text.
type Failure int

const (
	FailureNone Failure = iota
	// FailureUnavailable: no generator configured. Permanent for the process.
	FailureUnavailable
	// FailureCall: the model call returned an error (network, quota, credentials, ...).
	FailureCall
	// FailureEmpty: the call succeeded but the trimmed text was empty.
	FailureEmpty
	// FailureNoInput: nothing to send, no call attempted.
	FailureNoInput
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "ok"
	case FailureUnavailable:
		return "unavailable"
	case FailureCall:
		return "call_failed"
	case FailureEmpty:
		return "empty"
	case FailureNoInput:
		return "skipped"
	default:
		return fmt.Sprintf("failure(%d)", int(f))
	}
}

// Result is either generated text or a classified failure.
type Result struct {
	Text    string
	Failure Failure
	Err     error
}

func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Fallback holds the static texts an operation answers with when generation
// is not possible.
type Fallback struct {
	Unavailable string
	Failed      string
}

// OrFallback is the single place where failures become user-facing text.
func (r Result) OrFallback(fb Fallback) string {
	switch r.Failure {
	case FailureNone:
		return r.Text
	case FailureUnavailable:
		return fb.Unavailable
	default:
		return fb.Failed
	}
}
