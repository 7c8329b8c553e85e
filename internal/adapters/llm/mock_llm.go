package llm

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedLLM is a domain.TextGenerator for local mode and tests.
// It records every prompt and answers with Reply (or Err).
type ScriptedLLM struct {
	mu      sync.Mutex
	prompts []string

	Reply string
	Err   error
}

func NewScriptedLLM(reply string) *ScriptedLLM {
	return &ScriptedLLM{Reply: reply}
}

// NewMockLLM returns a ScriptedLLM with a friendly canned answer.
func NewMockLLM() *ScriptedLLM {
	return NewScriptedLLM("Thank you for sharing this. Notice what you are feeling without judging it, and take one slow breath before your next step.")
}

func (m *ScriptedLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", fmt.Errorf("scripted llm: %w", m.Err)
	}
	return m.Reply, nil
}

// Prompts returns a copy of every prompt received so far.
func (m *ScriptedLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns how many prompts were received.
func (m *ScriptedLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
