package gap

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/spigell/skill-gap/internal/matching"
	"github.com/spigell/skill-gap/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMatcher returns fixed matches per text.
type stubMatcher map[string][]matching.Match

func (s stubMatcher) Match(_ context.Context, text string, _ matching.Strategy) ([]matching.Match, error) {
	if text == "broken" {
		return nil, errors.New("matching failed")
	}
	return s[text], nil
}

func matches(skills ...string) []matching.Match {
	out := make([]matching.Match, 0, len(skills))
	for i, skill := range skills {
		out = append(out, matching.Match{Skill: skill, Confidence: 0.9 - float64(i)/10, Method: "exact"})
	}
	return out
}

func testStore() *vocabulary.Store {
	return vocabulary.Build(vocabulary.Source{
		Categories: []vocabulary.Category{
			{Name: "programming_languages", Skills: []string{"python"}},
			{Name: "frontend", Skills: []string{"react"}},
			{Name: "cloud_devops", Skills: []string{"docker", "aws"}},
			{Name: "data_science_ml", Skills: []string{"machine learning"}},
		},
		Recommendations: map[string]vocabulary.Recommendation{
			"aws": {Courses: []string{"AWS Certified Cloud Practitioner"}, Difficulty: "intermediate", TimeEstimate: "2-3 months"},
		},
	})
}

func testAnalyzer() *Analyzer {
	return New(stubMatcher{
		"resume": matches("python", "react", "docker"),
		"job":    matches("python", "react", "aws", "machine learning"),
		"empty":  nil,
	}, testStore(), nil)
}

func TestAnalyze(t *testing.T) {
	report, err := testAnalyzer().Analyze(context.Background(), "resume", "job", matching.Hybrid)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "react"}, report.Matched)
	assert.Equal(t, []string{"aws", "machine learning"}, report.Missing)
	assert.Equal(t, []string{"docker"}, report.Additional)
	assert.Equal(t, 50.0, report.MatchPercentage)
	assert.Equal(t, 4, report.TotalTargetSkills)
	assert.Equal(t, 3, report.TotalSourceSkills)
	assert.Equal(t, matching.Hybrid, report.Strategy)

	require.Len(t, report.Recommendations, 2)
	assert.Equal(t, "intermediate", report.Recommendations["aws"].Difficulty)
	assert.Equal(t, vocabulary.DifficultyVaries, report.Recommendations["machine learning"].Difficulty)
}

func TestAnalyzeSymmetry(t *testing.T) {
	analyzer := testAnalyzer()

	forward, err := analyzer.Analyze(context.Background(), "resume", "job", matching.Exact)
	require.NoError(t, err)
	backward, err := analyzer.Analyze(context.Background(), "job", "resume", matching.Exact)
	require.NoError(t, err)

	assert.Equal(t, forward.Missing, backward.Additional)
	assert.Equal(t, forward.Additional, backward.Missing)
	assert.Equal(t, forward.Matched, backward.Matched)
}

func TestAnalyzeEmptyTarget(t *testing.T) {
	report, err := testAnalyzer().Analyze(context.Background(), "resume", "empty", matching.Hybrid)
	require.NoError(t, err)

	assert.Zero(t, report.MatchPercentage)
	assert.Empty(t, report.Matched)
	assert.Empty(t, report.Missing)
	assert.Equal(t, []string{"docker", "python", "react"}, report.Additional)
	assert.Nil(t, report.Recommendations)

	// empty lists still encode as arrays
	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"matched_skills":[]`)
}

func TestAnalyzeRecommendsFirstMissingSkills(t *testing.T) {
	analyzer := New(stubMatcher{
		"job": matches("a1", "a2", "a3", "a4", "a5", "a6", "a7"),
	}, testStore(), nil)

	report, err := analyzer.Analyze(context.Background(), "nothing", "job", matching.Exact)
	require.NoError(t, err)
	require.Len(t, report.Missing, 7)
	assert.Len(t, report.Recommendations, 5)
	assert.NotContains(t, report.Recommendations, "a6")
}

func TestAnalyzeMatcherError(t *testing.T) {
	_, err := testAnalyzer().Analyze(context.Background(), "broken", "job", matching.Hybrid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source skills")

	_, err = testAnalyzer().AnalyzeDetailed(context.Background(), "resume", "broken", matching.Hybrid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target skills")
}

func TestAnalyzeDetailed(t *testing.T) {
	report, err := testAnalyzer().AnalyzeDetailed(context.Background(), "resume", "job", matching.Exact)
	require.NoError(t, err)

	require.Len(t, report.Matched, 2)
	assert.Equal(t, MatchedSkill{ResumeConfidence: 0.9, JobConfidence: 0.9}, report.Matched["python"])

	require.Len(t, report.Missing, 2)
	assert.Equal(t, []string{"AWS Certified Cloud Practitioner"}, report.Missing["aws"].Recommendations.Courses)
	assert.InDelta(t, 0.6, report.Missing["machine learning"].Confidence, 1e-9)
	// skills without a curated entry get the generic recommendation
	assert.Equal(t, vocabulary.DifficultyVaries, report.Missing["machine learning"].Recommendations.Difficulty)
	assert.Equal(t, "1-3 months", report.Missing["machine learning"].Recommendations.TimeEstimate)

	require.Len(t, report.Additional, 1)
	assert.Contains(t, report.Additional, "docker")
	assert.Equal(t, 50.0, report.MatchPercentage)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, percentage(0, 0))
	assert.Equal(t, 33.33, percentage(1, 3))
	assert.Equal(t, 66.67, percentage(2, 3))
	assert.Equal(t, 100.0, percentage(4, 4))
}

func TestReportByCategory(t *testing.T) {
	report, err := testAnalyzer().Analyze(context.Background(), "resume", "job", matching.Hybrid)
	require.NoError(t, err)

	byCategory := report.ReportByCategory(testStore())
	assert.Equal(t, []string{"python"}, byCategory["programming_languages"]["matched"])
	assert.Equal(t, []string{"aws"}, byCategory["cloud_devops"]["missing"])
	assert.Equal(t, []string{"docker"}, byCategory["cloud_devops"]["additional"])
}

func TestDumpToTmpFile(t *testing.T) {
	report, err := testAnalyzer().Analyze(context.Background(), "resume", "job", matching.Hybrid)
	require.NoError(t, err)

	name, err := report.DumpToTmpFile()
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Missing, decoded.Missing)
}

func engineAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	store := testStore()
	engine, err := matching.New(context.Background(), store, matching.Models{}, matching.DefaultConfig(), nil)
	require.NoError(t, err)
	return New(engine, store, nil)
}

const (
	resumeText = "Python developer. Built React frontends and shipped them with Docker."
	jobText    = "We need Python, React, AWS and machine learning experience."
)

func TestAnalyzeWithEngine(t *testing.T) {
	analyzer := engineAnalyzer(t)

	report, err := analyzer.Analyze(context.Background(), resumeText, jobText, matching.Exact)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "react"}, report.Matched)
	assert.Equal(t, []string{"aws", "machine learning"}, report.Missing)
	assert.Equal(t, []string{"docker"}, report.Additional)
	assert.Equal(t, 50.0, report.MatchPercentage)

	backward, err := analyzer.Analyze(context.Background(), jobText, resumeText, matching.Exact)
	require.NoError(t, err)
	assert.Equal(t, report.Missing, backward.Additional)
	assert.Equal(t, report.Additional, backward.Missing)
	assert.Equal(t, report.Matched, backward.Matched)
}

func TestAnalyzeWithEngineNoTargetSkills(t *testing.T) {
	report, err := engineAnalyzer(t).Analyze(context.Background(), resumeText, "We value curiosity and teamwork.", matching.Exact)
	require.NoError(t, err)

	assert.Zero(t, report.MatchPercentage)
	assert.Empty(t, report.Matched)
	assert.Empty(t, report.Missing)
	assert.Equal(t, []string{"docker", "python", "react"}, report.Additional)
}
