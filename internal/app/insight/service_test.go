package insight_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/mindbloom/internal/adapters/llm"
	"github.com/PabloGalante/mindbloom/internal/adapters/storage/memory"
	"github.com/PabloGalante/mindbloom/internal/app/insight"
	"github.com/PabloGalante/mindbloom/internal/app/profile"
	"github.com/PabloGalante/mindbloom/internal/app/reflection"
	"github.com/PabloGalante/mindbloom/internal/domain"
)

func newService(gen *llm.ScriptedLLM) (*insight.Service, *memory.Store) {
	store := memory.NewStore()
	return insight.NewService(store, store, profile.NewService(store), reflection.New(gen)), store
}

func addEntries(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, store.AppendJournalEntry(context.Background(), &domain.JournalEntry{
			UserID:  "u",
			Content: fmt.Sprintf("entry %d", i),
		}))
	}
}

func TestDashboardEmpty(t *testing.T) {
	gen := llm.NewScriptedLLM("ok")
	svc, _ := newService(gen)

	d, err := svc.Dashboard(context.Background(), "u")
	require.NoError(t, err)

	assert.Nil(t, d.LatestMood)
	assert.Empty(t, d.RecentJournals)
	assert.Empty(t, d.MentorInsight)
	assert.Nil(t, d.Breakthrough)
	assert.Zero(t, gen.Calls())
}

func TestDashboardBelowBreakthroughThreshold(t *testing.T) {
	gen := llm.NewScriptedLLM("Small steps count.")
	svc, store := newService(gen)
	addEntries(t, store, 2)

	d, err := svc.Dashboard(context.Background(), "u")
	require.NoError(t, err)

	assert.Equal(t, "Small steps count.", d.MentorInsight)
	assert.Nil(t, d.Breakthrough)
	require.Equal(t, 1, gen.Calls())
	assert.Contains(t, gen.Prompts()[0], `Recent Thought: "entry 2"`)
	assert.Contains(t, gen.Prompts()[0], "- entry 1")
	assert.Contains(t, gen.Prompts()[0], "CURRENT MOOD PROFILE: None")
}

func TestDashboardWithBreakthrough(t *testing.T) {
	gen := llm.NewScriptedLLM("BREAKTHROUGH: Consistency.\nMILESTONE: Twelve entries written.")
	svc, store := newService(gen)
	addEntries(t, store, 12)
	require.NoError(t, store.AppendMoodEntry(context.Background(), &domain.MoodEntry{UserID: "u", Mood: 6, Energy: 5}))

	d, err := svc.Dashboard(context.Background(), "u")
	require.NoError(t, err)

	require.Len(t, d.RecentJournals, 3)
	assert.Equal(t, "entry 12", d.RecentJournals[0].Content)
	require.NotNil(t, d.LatestMood)

	require.Equal(t, 2, gen.Calls())
	reflectionPrompt, breakthroughPrompt := gen.Prompts()[0], gen.Prompts()[1]
	assert.Contains(t, reflectionPrompt, "USER RECENT HISTORY (Memory):\n- entry 11\n- entry 10 |")
	assert.Contains(t, reflectionPrompt, "CURRENT MOOD PROFILE: Mood: 6, Energy: 5")

	assert.Equal(t, 10, strings.Count(breakthroughPrompt, "\n- entry "))
	assert.NotContains(t, breakthroughPrompt, "- entry 2\n")

	require.NotNil(t, d.Breakthrough)
	assert.Equal(t, "Consistency.", d.Breakthrough.Insight)
	assert.Equal(t, "Twelve entries written.", d.Breakthrough.Milestone)
}

func TestDashboardUnavailable(t *testing.T) {
	store := memory.NewStore()
	svc := insight.NewService(store, store, profile.NewService(store), reflection.New(nil))
	addEntries(t, store, 5)

	d, err := svc.Dashboard(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, reflection.UnavailableReflection, d.MentorInsight)
	assert.Nil(t, d.Breakthrough)
}

func TestMentorEmpty(t *testing.T) {
	gen := llm.NewScriptedLLM("ok")
	svc, _ := newService(gen)

	got, err := svc.Mentor(context.Background(), "u")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, gen.Calls())
}

func TestMentorUsesLastFiveEntries(t *testing.T) {
	gen := llm.NewScriptedLLM("You keep showing up.")
	svc, store := newService(gen)
	require.NoError(t, store.UpsertProfile(context.Background(), &domain.Profile{UserID: "u", Persona: domain.PersonaCatalyst}))
	addEntries(t, store, 7)

	got, err := svc.Mentor(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, "You keep showing up.", got)

	require.Equal(t, 1, gen.Calls())
	prompt := gen.Prompts()[0]
	assert.Contains(t, prompt, "USER RECENT HISTORY (Memory):\n- entry 6\n- entry 5\n- entry 4\n- entry 3 |")
	assert.NotContains(t, prompt, "- entry 2")
	assert.Contains(t, prompt, "CURRENT MOOD PROFILE: Recent Mood Score: N/A")
	assert.Contains(t, prompt, `based on my latest thought: entry 7"`)
	assert.Contains(t, prompt, domain.PersonaZen.Instructions())
}

func TestMentorTruncatesLatestThought(t *testing.T) {
	gen := llm.NewScriptedLLM("ok")
	svc, store := newService(gen)
	ctx := context.Background()
	long := strings.Repeat("é", 299) + "ab" + strings.Repeat("z", 50)
	require.NoError(t, store.AppendJournalEntry(ctx, &domain.JournalEntry{UserID: "u", Content: long}))
	require.NoError(t, store.AppendMoodEntry(ctx, &domain.MoodEntry{UserID: "u", Mood: 7}))

	_, err := svc.Mentor(ctx, "u")
	require.NoError(t, err)

	prompt := gen.Prompts()[0]
	assert.Contains(t, prompt, "my latest thought: "+strings.Repeat("é", 299)+"a\"")
	assert.NotContains(t, prompt, strings.Repeat("é", 299)+"ab")
	assert.Contains(t, prompt, "CURRENT MOOD PROFILE: Recent Mood Score: 7")
}

func TestChat(t *testing.T) {
	gen := llm.NewScriptedLLM("That sounds exhausting.")
	svc, store := newService(gen)
	require.NoError(t, store.UpsertProfile(context.Background(), &domain.Profile{UserID: "u", Persona: domain.PersonaListener}))

	got := svc.Chat(context.Background(), "u", "my group project fell apart")

	assert.Equal(t, "That sounds exhausting.", got)
	assert.Contains(t, gen.Prompts()[0], `Recent Thought: "User ranted or asked: my group project fell apart"`)
	assert.Contains(t, gen.Prompts()[0], "EMPATHETIC LISTENER")
}
