package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mindbloom/internal/adapters/llm"
)

func TestScriptedLLMRecordsPrompts(t *testing.T) {
	m := llm.NewScriptedLLM("hello")

	out, err := m.GenerateText(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	_, _ = m.GenerateText(context.Background(), "second")
	assert.Equal(t, []string{"first", "second"}, m.Prompts())
	assert.Equal(t, 2, m.Calls())
}

func TestScriptedLLMError(t *testing.T) {
	boom := errors.New("quota exceeded")
	m := &llm.ScriptedLLM{Err: boom}

	_, err := m.GenerateText(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.Calls())
}

func TestNewGeminiClientRequiresCredentials(t *testing.T) {
	_, err := llm.NewGeminiClient(context.Background(), llm.GeminiConfig{})
	assert.Error(t, err)

	_, err = llm.NewGeminiClient(context.Background(), llm.GeminiConfig{Vertex: true, Project: "p"})
	assert.Error(t, err)
}
