package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type LLMBackend string

const (
	LLMBackendGemini LLMBackend = "gemini"
	LLMBackendVertex LLMBackend = "vertex"
	LLMBackendMock   LLMBackend = "mock"
)

type Config struct {
	Port string

	// GeminiAPIKey may be empty: the AI companion then runs in unavailable
	// mode and every generation returns its fallback text.
	GeminiAPIKey string
	LLMBackend   LLMBackend
	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "sqlite" or "firestore"
	DBPath         string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads an optional .env file plus all env vars and builds the config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		Port: getEnv("MINDBLOOM_PORT", getEnv("PORT", "8080")),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		LLMBackend:   LLMBackend(strings.ToLower(getEnv("MINDBLOOM_LLM_BACKEND", string(LLMBackendGemini)))),
		GCPProjectID: getEnv("MINDBLOOM_GCP_PROJECT", ""),
		GCPLocation:  getEnv("MINDBLOOM_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("MINDBLOOM_MODEL_NAME", "gemini-flash-lite-latest"),

		StorageBackend: strings.ToLower(getEnv("MINDBLOOM_STORAGE_BACKEND", "memory")),
		DBPath:         getEnv("MINDBLOOM_DB_PATH", "./data/mindbloom.db"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks combinations that cannot work. A missing API key is not an error.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("MINDBLOOM_PORT cannot be empty")
	}

	switch c.LLMBackend {
	case LLMBackendGemini, LLMBackendMock:
	case LLMBackendVertex:
		if c.GCPProjectID == "" {
			return fmt.Errorf("MINDBLOOM_GCP_PROJECT must be set for the vertex backend")
		}
	default:
		return fmt.Errorf("unknown MINDBLOOM_LLM_BACKEND %q", c.LLMBackend)
	}

	switch c.StorageBackend {
	case "memory":
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("MINDBLOOM_DB_PATH cannot be empty for the sqlite backend")
		}
	case "firestore":
		if c.GCPProjectID == "" {
			return fmt.Errorf("MINDBLOOM_GCP_PROJECT must be set for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown MINDBLOOM_STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

// AIConfigured reports whether a generator should be built at all.
func (c *Config) AIConfigured() bool {
	switch c.LLMBackend {
	case LLMBackendMock, LLMBackendVertex:
		return true
	default:
		return c.GeminiAPIKey != ""
	}
}
