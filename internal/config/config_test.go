package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("MINDBLOOM_LLM_BACKEND", "")
	t.Setenv("MINDBLOOM_STORAGE_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LLMBackendGemini, cfg.LLMBackend)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "gemini-flash-lite-latest", cfg.ModelName)
	assert.False(t, cfg.AIConfigured())
}

func TestLoadWithAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("MINDBLOOM_LLM_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AIConfigured())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Port: "8080", LLMBackend: LLMBackendGemini, StorageBackend: "memory"}, false},
		{"empty port", Config{LLMBackend: LLMBackendGemini, StorageBackend: "memory"}, true},
		{"vertex without project", Config{Port: "8080", LLMBackend: LLMBackendVertex, StorageBackend: "memory"}, true},
		{"firestore without project", Config{Port: "8080", LLMBackend: LLMBackendMock, StorageBackend: "firestore"}, true},
		{"sqlite", Config{Port: "8080", LLMBackend: LLMBackendMock, StorageBackend: "sqlite", DBPath: "x.db"}, false},
		{"unknown storage", Config{Port: "8080", LLMBackend: LLMBackendMock, StorageBackend: "redis"}, true},
		{"unknown backend", Config{Port: "8080", LLMBackend: "openai", StorageBackend: "memory"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
