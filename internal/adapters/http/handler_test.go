package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mindbloom/internal/adapters/llm"
	"github.com/PabloGalante/mindbloom/internal/adapters/storage/memory"
	"github.com/PabloGalante/mindbloom/internal/app/insight"
	"github.com/PabloGalante/mindbloom/internal/app/journal"
	"github.com/PabloGalante/mindbloom/internal/app/mood"
	"github.com/PabloGalante/mindbloom/internal/app/profile"
	"github.com/PabloGalante/mindbloom/internal/app/reflection"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	ai := reflection.New(llm.NewMockLLM())
	profiles := profile.NewService(store)

	return NewServer(Services{
		Journal: journal.NewService(store, store, store, profiles, ai),
		Mood:    mood.NewService(store, ai),
		Insight: insight.NewService(store, store, profiles, ai),
		Profile: profiles,
	})
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/users/u1/chat", `{"message":"hi"}`)

	w := do(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mindbloom_reflection_generations_total")
}

func TestSubmitAndListJournal(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/users/u1/journal", `{"content":"Slept well, finished reading"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, false, body["flagged"])
	assert.Equal(t, noticeSaved, body["notice"])

	w = do(t, srv, http.MethodGet, "/users/u1/journal?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode(t, w)["entries"].([]any)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].(map[string]any)["ai_reflection"])
}

func TestSubmitFlaggedJournal(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/users/u1/journal", `{"content":"I want to hurt myself"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["flagged"])
	assert.Equal(t, noticeFlagged, body["notice"])

	w = do(t, srv, http.MethodGet, "/users/u1/alerts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["alerts"].([]any), 1)
}

func TestSubmitJournalValidation(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/users/u1/journal", `{"content":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/users/u1/journal", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/users/u1/journal?limit=-1", "").Code)
}

func TestMoodCheckIn(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/users/u1/moods", `{"mood_score":2,"energy_score":2,"stress_score":9}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["suggestion"])

	w = do(t, srv, http.MethodPost, "/users/u1/moods", `{"mood_score":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	for _, c := range []string{"one", "two", "three"} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/users/u1/journal", `{"content":"`+c+`"}`).Code)
	}

	w := do(t, srv, http.MethodGet, "/users/u1/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["recent_journals"].([]any), 3)
	assert.NotEmpty(t, body["ai_mentor_insight"])
	assert.NotNil(t, body["breakthrough"])
	assert.NotEmpty(t, body["greeting"])
}

func TestMentor(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/users/u1/mentor", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["insights"])

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/users/u1/journal", `{"content":"one"}`).Code)
	w = do(t, srv, http.MethodGet, "/users/u1/mentor", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["insights"])
}

func TestPersona(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/users/u1/persona", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ZEN", decode(t, w)["ai_persona"])

	w = do(t, srv, http.MethodPut, "/users/u1/persona", `{"ai_persona":"catalyst"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CATALYST", decode(t, w)["ai_persona"])

	w = do(t, srv, http.MethodPut, "/users/u1/persona", `{"ai_persona":"PIRATE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatRequiresMessage(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodPost, "/users/u1/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGreeting(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Good Morning", greeting(day.Add(8*time.Hour)))
	assert.Equal(t, "Good Afternoon", greeting(day.Add(13*time.Hour)))
	assert.Equal(t, "Good Evening", greeting(day.Add(20*time.Hour)))
}
