package matching

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/spigell/skill-gap/internal/ai/chunker"
	"github.com/spigell/skill-gap/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"exact", "Fuzzy", " semantic ", "CONTEXTUAL", "hybrid"} {
		_, err := ParseStrategy(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseStrategy("magic")
	require.ErrorIs(t, err, ErrInvalidStrategy)
	assert.Contains(t, err.Error(), "exact, fuzzy, semantic, contextual, hybrid")
}

func TestMatchInvalidStrategy(t *testing.T) {
	engine := newTestEngine(t, Models{}, DefaultConfig())

	_, err := engine.Match(context.Background(), "python", Strategy("magic"))
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestMatchDisabledStrategy(t *testing.T) {
	engine := newTestEngine(t, Models{}, DefaultConfig())

	assert.False(t, engine.Enabled(Semantic))
	assert.False(t, engine.Enabled(Contextual))
	assert.True(t, engine.Enabled(Hybrid))

	for _, strategy := range []Strategy{Semantic, Contextual} {
		_, err := engine.Match(context.Background(), "python", strategy)
		assert.ErrorIs(t, err, ErrModelUnavailable, strategy)
	}
}

func TestNewFailsOnBrokenModels(t *testing.T) {
	store := scenarioStore()
	embedder := newKeywordEmbedder(store)
	embedder.err = errRemote

	_, err := New(context.Background(), store, Models{Embedder: embedder}, DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	_, err = New(context.Background(), store, Models{Phrases: &stubPhrases{checkErr: errRemote}}, DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.ErrorIs(t, err, errRemote)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FuzzyThreshold = 1.5
	cfg.TopK = 0

	_, err := New(context.Background(), scenarioStore(), Models{}, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy-threshold")
	assert.Contains(t, err.Error(), "top-k")
}

func TestEmptyVocabulary(t *testing.T) {
	store := vocabulary.Build(vocabulary.Source{})
	models := Models{Embedder: newKeywordEmbedder(store), Phrases: chunker.New(0)}

	engine, err := New(context.Background(), store, models, DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	for _, strategy := range Strategies() {
		matches, err := engine.Match(context.Background(), "Python, Docker and AWS", strategy)
		require.NoError(t, err, strategy)
		assert.Empty(t, matches, strategy)
	}
}

func TestEmptyText(t *testing.T) {
	store := scenarioStore()
	engine := newTestEngine(t, Models{Embedder: newKeywordEmbedder(store), Phrases: chunker.New(0)}, DefaultConfig())

	for _, strategy := range Strategies() {
		matches, err := engine.Match(context.Background(), "", strategy)
		require.NoError(t, err, strategy)
		assert.Empty(t, matches, strategy)
	}
}

func TestMatchIsSafeForConcurrentUse(t *testing.T) {
	store := scenarioStore()
	engine := newTestEngine(t, Models{Embedder: newKeywordEmbedder(store), Phrases: chunker.New(0)}, DefaultConfig())
	text := "Experience with Docker and AWS. Python developer using ReactJS."

	want, err := engine.Match(context.Background(), text, Hybrid)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]Match, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = engine.Match(context.Background(), text, Hybrid)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEngineStatus(t *testing.T) {
	engine := newTestEngine(t, Models{Phrases: chunker.New(0)}, DefaultConfig())

	statuses := engine.Status()
	require.Len(t, statuses, 4)

	names := make([]Strategy, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.Name)
	}
	assert.Equal(t, []Strategy{Exact, Fuzzy, Semantic, Contextual}, names)

	assert.True(t, statuses[0].Enabled)
	assert.False(t, statuses[2].Enabled)
	assert.NotEmpty(t, statuses[2].Reason)
	assert.Equal(t, chunker.Name, statuses[3].Details["model"])
}

func TestMatcherStateIsReadOnly(t *testing.T) {
	matcher := reflect.TypeOf((*Matcher)(nil)).Elem()
	for i := range matcher.NumMethod() {
		assert.NotEqual(t, "Disable", matcher.Method(i).Name)
	}

	engine := newTestEngine(t, Models{}, DefaultConfig())
	for _, m := range engine.matchers {
		_, exported := reflect.TypeOf(m).MethodByName("Disable")
		assert.False(t, exported, m.Name().String())
	}
	assert.False(t, engine.Enabled(Semantic))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Weights = Weights{}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Weights.Fuzzy = -1
	assert.Error(t, cfg.Validate())
}

func TestByConfidence(t *testing.T) {
	matches := []Match{
		{Skill: "go", Confidence: 0.5},
		{Skill: "aws", Confidence: 0.9},
		{Skill: "docker", Confidence: 0.5},
	}
	ByConfidence(matches)
	assert.Equal(t, []string{"aws", "docker", "go"}, skillNames(matches))
	assert.Equal(t, []string{"aws", "docker", "go"}, Skills(matches))
}
