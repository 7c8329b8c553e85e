package reflection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBreakthrough(t *testing.T) {
	raw := "**BREAKTHROUGH:** Rest is becoming a choice, not a failure.\nMilestone: You protected your sleep four nights in a row."
	b := ParseBreakthrough(raw)

	assert.Equal(t, "Rest is becoming a choice, not a failure.", b.Insight)
	assert.Equal(t, "You protected your sleep four nights in a row.", b.Milestone)
	assert.Equal(t, raw, b.Raw)
}

func TestParseBreakthroughUnstructured(t *testing.T) {
	b := ParseBreakthrough("Keep writing, patterns take time to show.")
	assert.Empty(t, b.Insight)
	assert.Empty(t, b.Milestone)
	assert.Equal(t, "Keep writing, patterns take time to show.", b.Raw)
}

func TestResultOrFallback(t *testing.T) {
	fb := Fallback{Unavailable: "u", Failed: "f"}

	assert.Equal(t, "text", Result{Text: "text"}.OrFallback(fb))
	assert.Equal(t, "u", Result{Failure: FailureUnavailable}.OrFallback(fb))
	assert.Equal(t, "f", Result{Failure: FailureCall}.OrFallback(fb))
	assert.Equal(t, "f", Result{Failure: FailureEmpty}.OrFallback(fb))
	assert.Equal(t, "call_failed", FailureCall.String())
}
