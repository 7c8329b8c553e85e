package reflection

import (
	"fmt"
	"strings"
)

const identity = "Identity: MindBloom's AI Companion (Growth Mentor)."

const reflectionInstructions = "Response: Provide a warm, high-insight reflection (2-3 sentences). " +
	"Acknowledge patterns or growth. Avoid generic talk."

const breakthroughInstructions = `Task:
1. Identify ONE major recurring theme or positive breakthrough.
2. Provide a 1-sentence "Growth Milestone" for the user.
3. If no significant breakthrough is found, provide a gentle encouragement for continued reflection.

Format: Return a plain-text response (string only) with:
BREAKTHROUGH: [Insight]
MILESTONE: [Milestone]`

const (
	lowEnergyCue  = "If energy is low, be protective."
	highStressCue = "If stress is high, be grounding."
)

// bulleted renders entries one per line, in the given order, each prefixed with "- ".
func bulleted(entries []string) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(e)
	}
	return b.String()
}

// ReflectionPrompt composes the prompt for a single journal reflection.
func ReflectionPrompt(req ReflectionRequest) string {
	var historyBlock, moodBlock string
	if len(req.History) > 0 {
		historyBlock = "USER RECENT HISTORY (Memory):\n" + bulleted(req.History)
	}
	if req.MoodSummary != "" {
		moodBlock = "CURRENT MOOD PROFILE: " + req.MoodSummary
	}

	var b strings.Builder
	b.WriteString(identity)
	b.WriteString("\nMode: ")
	b.WriteString(req.Persona.Instructions())
	b.WriteString("\nContext: ")
	b.WriteString(historyBlock)
	b.WriteString(" | ")
	b.WriteString(moodBlock)
	b.WriteString("\n\nRecent Thought: \"")
	b.WriteString(req.Text)
	b.WriteString("\"\n\n")
	b.WriteString(reflectionInstructions)
	return b.String()
}

// BreakthroughPrompt composes the pattern analysis prompt over past entries.
func BreakthroughPrompt(history []string) string {
	var b strings.Builder
	b.WriteString("Analyze the following journal entries for a mental health breakthrough or significant growth pattern.\n\n")
	b.WriteString("JOURNAL ENTRIES:\n")
	b.WriteString(bulleted(history))
	b.WriteString("\n\n")
	b.WriteString(breakthroughInstructions)
	return b.String()
}

// MoodSuggestionPrompt composes the daily focus prompt. Scores are not validated.
func MoodSuggestionPrompt(s MoodSnapshot, trend string) string {
	var b strings.Builder
	b.WriteString("User Mind Check-in:\n")
	fmt.Fprintf(&b, "Mood: %d/10\nEnergy: %d/10\nStress: %d/10\n", s.Mood, s.Energy, s.Stress)
	if trend != "" {
		b.WriteString("RECENT TRENDS: ")
		b.WriteString(trend)
		b.WriteString("\n")
	}
	b.WriteString("\nSuggest a gentle focus level for the day and one piece of advice that acknowledges their current state.\n")
	b.WriteString(lowEnergyCue)
	b.WriteString(" ")
	b.WriteString(highStressCue)
	b.WriteString("\nKeep it brief and calm.")
	return b.String()
}
