// Package reflection turns journal, mood and persona context into prompts for
// a hosted text model and always returns usable text.
package reflection

import (
	"context"
	"strings"
	"time"

	"github.com/PabloGalante/mindbloom/internal/domain"
	"github.com/PabloGalante/mindbloom/internal/observability"
)

const (
	UnavailableReflection = "AI service is currently unavailable. Reflect on your thoughts and breathe deeply."
	FallbackReflection    = "I'm here for you. Take your time to process these thoughts."

	UnavailableMoodSuggestion = "Listen to your body today. You know best what you need."
	FallbackMoodSuggestion    = "Take it one step at a time today."
)

const (
	opReflection   = "reflection"
	opBreakthrough = "breakthrough"
	opMood         = "mood_suggestion"
)

var (
	reflectionFallback = Fallback{Unavailable: UnavailableReflection, Failed: FallbackReflection}
	moodFallback       = Fallback{Unavailable: UnavailableMoodSuggestion, Failed: FallbackMoodSuggestion}
)

// ReflectionRequest is the context for one reflection. Only Text is required.
// History is rendered exactly as given (callers pick the window, most recent first).
type ReflectionRequest struct {
	Text        string
	Persona     domain.Persona
	History     []string
	MoodSummary string
}

// MoodSnapshot holds the three check-in scores, nominally 1-10.
type MoodSnapshot struct {
	Mood   int
	Energy int
	Stress int
}

// Orchestrator owns the generator handle. It is constructed once at startup,
// never mutated afterwards, and is safe for concurrent use.
type Orchestrator struct {
	gen domain.TextGenerator
}

// New builds an Orchestrator. A nil generator puts it permanently in
// unavailable mode: no network call is ever attempted.
func New(gen domain.TextGenerator) *Orchestrator {
	return &Orchestrator{gen: gen}
}

// Available reports whether a generator is configured.
func (o *Orchestrator) Available() bool {
	return o != nil && o.gen != nil
}

// GenerateReflection returns 2-3 sentences of reflection on req.Text, or a fallback.
func (o *Orchestrator) GenerateReflection(ctx context.Context, req ReflectionRequest) string {
	res := o.generate(ctx, opReflection, func() string { return ReflectionPrompt(req) })
	return res.OrFallback(reflectionFallback)
}

// GenerateBreakthroughAnalysis looks for a recurring theme across history.
// The boolean is false when history is empty, the orchestrator is
// unavailable, or the call failed; there is no fallback text.
func (o *Orchestrator) GenerateBreakthroughAnalysis(ctx context.Context, history []string) (string, bool) {
	if len(history) == 0 {
		observability.RecordGeneration(opBreakthrough, FailureNoInput.String())
		return "", false
	}

	res := o.generate(ctx, opBreakthrough, func() string { return BreakthroughPrompt(history) })
	if !res.OK() {
		return "", false
	}
	return res.Text, true
}

// GenerateMoodSuggestion suggests a focus level for the day. trend may be empty.
func (o *Orchestrator) GenerateMoodSuggestion(ctx context.Context, s MoodSnapshot, trend string) string {
	res := o.generate(ctx, opMood, func() string { return MoodSuggestionPrompt(s, trend) })
	return res.OrFallback(moodFallback)
}

// generate runs a single model call. The prompt is only built when a call
// will actually be made.
func (o *Orchestrator) generate(ctx context.Context, op string, prompt func() string) Result {
	log := observability.LoggerFromContext(ctx).With("operation", op)

	if !o.Available() {
		observability.RecordGeneration(op, FailureUnavailable.String())
		log.Debug("generator unavailable, using fallback")
		return Result{Failure: FailureUnavailable}
	}

	start := time.Now()
	text, err := o.gen.GenerateText(ctx, prompt())
	elapsed := time.Since(start)

	var res Result
	switch {
	case err != nil:
		res = Result{Failure: FailureCall, Err: err}
		log.Error("generation failed", "error", err, "elapsed_ms", elapsed.Milliseconds())
	case strings.TrimSpace(text) == "":
		res = Result{Failure: FailureEmpty}
		log.Warn("generation returned empty text", "elapsed_ms", elapsed.Milliseconds())
	default:
		res = Result{Text: strings.TrimSpace(text)}
		log.Info("generation completed", "elapsed_ms", elapsed.Milliseconds())
	}

	observability.RecordGeneration(op, res.Failure.String())
	return res
}
