package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/PabloGalante/mindbloom/internal/adapters/http"
	"github.com/PabloGalante/mindbloom/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/mindbloom/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/mindbloom/internal/adapters/storage/memory"
	sqlitestore "github.com/PabloGalante/mindbloom/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/mindbloom/internal/app/insight"
	"github.com/PabloGalante/mindbloom/internal/app/journal"
	"github.com/PabloGalante/mindbloom/internal/app/mood"
	"github.com/PabloGalante/mindbloom/internal/app/profile"
	"github.com/PabloGalante/mindbloom/internal/app/reflection"
	"github.com/PabloGalante/mindbloom/internal/config"
	"github.com/PabloGalante/mindbloom/internal/domain"
	"github.com/PabloGalante/mindbloom/internal/observability"
)

// store is what every storage backend provides.
type store interface {
	domain.JournalStore
	domain.MoodStore
	domain.ProfileStore
	domain.AlertStore
}

func main() {
	observability.SetLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: memory, sqlite or firestore
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error("failed to close storage", "error", err)
			}
		}()
	}

	// AI companion: built once, read-only afterwards. nil means unavailable mode.
	ai := reflection.New(newGenerator(ctx, cfg))
	log.Info("AI companion initialized", "available", ai.Available(), "backend", cfg.LLMBackend, "model", cfg.ModelName)

	profiles := profile.NewService(st)
	handler := httpadapter.NewServer(httpadapter.Services{
		Journal: journal.NewService(st, st, st, profiles, ai),
		Mood:    mood.NewService(st, ai),
		Insight: insight.NewService(st, st, profiles, ai),
		Profile: profiles,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("MindBloom API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store, io.Closer, error) {
	log := observability.Logger()

	switch cfg.StorageBackend {
	case "firestore":
		log.Info("using Firestore storage", "project", cfg.GCPProjectID)
		fs, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, err
		}
		return fs, fs, nil

	case "sqlite":
		log.Info("using SQLite storage", "path", cfg.DBPath)
		db, err := sqlitestore.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil

	default:
		log.Info("using in-memory storage")
		return memstore.NewStore(), nil, nil
	}
}

// newGenerator returns nil when no generator can be built; the rest of the
// application keeps working with fallback texts.
func newGenerator(ctx context.Context, cfg *config.Config) domain.TextGenerator {
	log := observability.Logger()

	if !cfg.AIConfigured() {
		log.Warn("GEMINI_API_KEY not set, AI companion unavailable")
		return nil
	}

	if cfg.LLMBackend == config.LLMBackendMock {
		log.Info("using MOCK LLM client")
		return llm.NewMockLLM()
	}

	client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
		APIKey:    cfg.GeminiAPIKey,
		Vertex:    cfg.LLMBackend == config.LLMBackendVertex,
		Project:   cfg.GCPProjectID,
		Location:  cfg.GCPLocation,
		ModelName: cfg.ModelName,
	})
	if err != nil {
		log.Error("failed to initialize Gemini client, AI companion unavailable", "error", err)
		return nil
	}
	return client
}
