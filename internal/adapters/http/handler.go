package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/PabloGalante/mindbloom/internal/app/insight"
	"github.com/PabloGalante/mindbloom/internal/app/journal"
	"github.com/PabloGalante/mindbloom/internal/app/mood"
	"github.com/PabloGalante/mindbloom/internal/app/profile"
	"github.com/PabloGalante/mindbloom/internal/app/reflection"
	"github.com/PabloGalante/mindbloom/internal/domain"
	"github.com/PabloGalante/mindbloom/internal/observability"
)

// Services groups the application services the HTTP layer talks to.
type Services struct {
	Journal *journal.Service
	Mood    *mood.Service
	Insight *insight.Service
	Profile *profile.Service
}

type Server struct {
	svc Services
}

func NewServer(svc Services) http.Handler {
	s := &Server{svc: svc}
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(withRequestID)
	r.Use(withLogging)
	r.Use(chiMiddleware.Recoverer)
	r.Use(withCORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", observability.MetricsHandler())

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Use(withUserID)

		r.Post("/journal", s.handleSubmitJournal)
		r.Get("/journal", s.handleListJournal)
		r.Get("/alerts", s.handleListAlerts)
		r.Post("/moods", s.handleMoodCheckIn)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/mentor", s.handleMentor)
		r.Post("/chat", s.handleChat)
		r.Get("/persona", s.handleGetPersona)
		r.Put("/persona", s.handleSetPersona)
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type submitJournalRequest struct {
	Content string `json:"content"`
}

type submitJournalResponse struct {
	Entry   *domain.JournalEntry `json:"entry"`
	Flagged bool                 `json:"flagged"`
	Notice  string               `json:"notice"`
}

type moodCheckInRequest struct {
	Mood   *int   `json:"mood_score"`
	Energy *int   `json:"energy_score"`
	Stress *int   `json:"stress_score"`
	Note   string `json:"note,omitempty"`
}

type moodCheckInResponse struct {
	Entry      *domain.MoodEntry `json:"entry"`
	Suggestion string            `json:"suggestion"`
}

type dashboardResponse struct {
	LatestMood     *domain.MoodEntry        `json:"latest_mood"`
	RecentJournals []*domain.JournalEntry   `json:"recent_journals"`
	MentorInsight  string                   `json:"ai_mentor_insight"`
	Breakthrough   *reflection.Breakthrough `json:"breakthrough"`
	Greeting       string                   `json:"greeting"`
}

type mentorResponse struct {
	Insights string `json:"insights"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
}

type personaRequest struct {
	Persona string `json:"ai_persona"`
}

type personaResponse struct {
	Persona      string `json:"ai_persona"`
	Instructions string `json:"instructions"`
}

const (
	noticeFlagged = "Your entry has been saved. We've noticed you might be going through a tough time. Please reach out to a professional if you need immediate help."
	noticeSaved   = "Journal entry saved. Your AI Companion has reflected on your thoughts."
)

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func userIDFrom(r *http.Request) domain.UserID {
	return domain.UserID(chi.URLParam(r, "userID"))
}

func (s *Server) handleSubmitJournal(w http.ResponseWriter, r *http.Request) {
	var req submitJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.svc.Journal.Submit(r.Context(), journal.SubmitInput{
		UserID:  userIDFrom(r),
		Content: req.Content,
	})
	if errors.Is(err, journal.ErrEmptyContent) {
		badRequest(w, "content is required")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}

	notice := noticeSaved
	if out.Entry.Flagged {
		notice = noticeFlagged
	}

	writeJSON(w, http.StatusCreated, submitJournalResponse{
		Entry:   out.Entry,
		Flagged: out.Entry.Flagged,
		Notice:  notice,
	})
}

func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.svc.Journal.List(r.Context(), userIDFrom(r), limit)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.svc.Journal.Alerts(r.Context(), userIDFrom(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

func (s *Server) handleMoodCheckIn(w http.ResponseWriter, r *http.Request) {
	var req moodCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Mood == nil || req.Energy == nil || req.Stress == nil {
		badRequest(w, "mood_score, energy_score and stress_score are required")
		return
	}

	out, err := s.svc.Mood.CheckIn(r.Context(), mood.CheckInInput{
		UserID: userIDFrom(r),
		Mood:   *req.Mood,
		Energy: *req.Energy,
		Stress: *req.Stress,
		Note:   req.Note,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, moodCheckInResponse{
		Entry:      out.Entry,
		Suggestion: out.Suggestion,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Insight.Dashboard(r.Context(), userIDFrom(r))
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		LatestMood:     d.LatestMood,
		RecentJournals: d.RecentJournals,
		MentorInsight:  d.MentorInsight,
		Breakthrough:   d.Breakthrough,
		Greeting:       greeting(time.Now()),
	})
}

func (s *Server) handleMentor(w http.ResponseWriter, r *http.Request) {
	insights, err := s.svc.Insight.Mentor(r.Context(), userIDFrom(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mentorResponse{Insights: insights})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		UserMessage: req.Message,
		AIResponse:  s.svc.Insight.Chat(r.Context(), userIDFrom(r), req.Message),
	})
}

func (s *Server) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile.Persona(r.Context(), userIDFrom(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, personaResponse{Persona: string(p), Instructions: p.Instructions()})
}

func (s *Server) handleSetPersona(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	p, err := s.svc.Profile.SetPersona(r.Context(), userIDFrom(r), req.Persona)
	if errors.Is(err, profile.ErrUnknownPersona) {
		badRequest(w, "ai_persona must be one of ZEN, STRATEGIST, LISTENER, CATALYST")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, personaResponse{Persona: string(p), Instructions: p.Instructions()})
}

// greeting picks the dashboard salutation for the given time of day.
func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}
