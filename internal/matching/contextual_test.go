package matching

import (
	"context"
	"testing"

	"github.com/spigell/skill-gap/internal/ai/chunker"
	"github.com/spigell/skill-gap/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextualMatchCuePatterns(t *testing.T) {
	m := newContextualMatcher(scenarioStore(), &stubPhrases{})

	matches, err := m.Match(context.Background(), "Experience with Docker, and familiar with AWS.\nSenior python developer")
	require.NoError(t, err)

	assert.Equal(t, []string{"docker", "aws", "python"}, skillNames(matches))
	for _, match := range matches {
		assert.Equal(t, contextualConfidence, match.Confidence)
		assert.Equal(t, "contextual", match.Method)
	}

	docker, _ := findMatch(matches, "docker")
	assert.Equal(t, "docker", docker.Context)
}

func TestContextualMatchBidirectionalContainment(t *testing.T) {
	m := newContextualMatcher(scenarioStore(), &stubPhrases{phrases: []string{"machine", "strong react skills", "scripting"}})

	matches, err := m.Match(context.Background(), "anything")
	require.NoError(t, err)

	// "machine" is contained in "machine learning"; "react" is contained in the phrase.
	assert.Equal(t, []string{"machine learning", "react"}, skillNames(matches))

	learning, _ := findMatch(matches, "machine learning")
	assert.Equal(t, "machine", learning.Context)
}

func TestContextualMatchWithChunker(t *testing.T) {
	m := newContextualMatcher(scenarioStore(), chunker.New(0))

	matches, err := m.Match(context.Background(), "Built services using Java and C++ (plus some JavaScript).")
	require.NoError(t, err)
	// "java" is contained in "javascript", so the first phrase claims both.
	assert.Equal(t, []string{"java", "javascript", "c++"}, skillNames(matches))

	javascript, _ := findMatch(matches, "javascript")
	assert.Equal(t, "java", javascript.Context)
}

func TestContextualMatchSubstringContainment(t *testing.T) {
	store := vocabulary.Build(vocabulary.Source{
		Categories: []vocabulary.Category{
			{Name: "programming_languages", Skills: []string{"python"}},
			{Name: "frontend", Skills: []string{"react"}},
			{Name: "cloud_devops", Skills: []string{"docker", "aws"}},
		},
	})
	m := newContextualMatcher(store, &stubPhrases{phrases: []string{"reactjs apps", "python3 scripts", "dock"}})

	matches, err := m.Match(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "python", "docker"}, skillNames(matches))

	react, _ := findMatch(matches, "react")
	assert.Equal(t, "reactjs apps", react.Context)
	docker, _ := findMatch(matches, "docker")
	assert.Equal(t, "dock", docker.Context)
}

func TestContextualMatchThroughEngine(t *testing.T) {
	engine, err := New(context.Background(), scenarioStore(), Models{Phrases: &stubPhrases{phrases: []string{"reactjs apps"}}}, DefaultConfig(), nil)
	require.NoError(t, err)

	matches, err := engine.Match(context.Background(), "Built reactjs apps", Contextual)
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, skillNames(matches))
}

func TestContextualMatchFirstPhraseWins(t *testing.T) {
	m := newContextualMatcher(scenarioStore(), &stubPhrases{phrases: []string{"docker compose", "docker"}})

	matches, err := m.Match(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "docker compose", matches[0].Context)
}

func TestContextualMatchPropagatesModelErrors(t *testing.T) {
	m := newContextualMatcher(scenarioStore(), &stubPhrases{err: errRemote})

	_, err := m.Match(context.Background(), "python")
	assert.ErrorIs(t, err, errRemote)
}

func TestContextualMatcherWithoutModel(t *testing.T) {
	m := newContextualMatcher(scenarioStore(), nil)
	assert.False(t, m.IsEnabled())
}

func TestCuePhrases(t *testing.T) {
	phrases := cuePhrases("proficient in kubernetes and helm. knowledge of pandas\nlead engineer")
	assert.Equal(t, []string{"kubernetes", "pandas", "lead"}, phrases)
}
