package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spigell/skill-gap/internal/ai"
	"github.com/spigell/skill-gap/internal/utils"
	"github.com/spigell/skill-gap/internal/vocabulary"
	"gonum.org/v1/gonum/floats"
)

type semanticMatcher struct {
	toggle

	store     *vocabulary.Store
	embedder  ai.Embedder
	skills    []string
	vectors   [][]float64
	norms     []float64
	topK      int
	threshold float64
}

// skillDescription is the text embedded for a skill.
func skillDescription(skill, category string) string {
	return fmt.Sprintf("%s %s technology programming development", skill, category)
}

// newSemanticMatcher embeds every skill description once. A nil embedder
// yields a disabled matcher.
func newSemanticMatcher(ctx context.Context, store *vocabulary.Store, embedder ai.Embedder, cfg Config) (*semanticMatcher, error) {
	m := &semanticMatcher{
		store:     store,
		embedder:  embedder,
		topK:      cfg.TopK,
		threshold: cfg.SemanticThreshold,
	}
	if embedder == nil {
		m.disable("no embedding model configured")
		return m, nil
	}

	skills := store.Skills()
	if len(skills) == 0 {
		return m, nil
	}

	descriptions := make([]string, len(skills))
	for i, skill := range skills {
		descriptions[i] = skillDescription(skill, store.CategoryOf(skill))
	}

	vectors, err := embedder.Embed(ctx, descriptions)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding skill descriptions: %w", ErrModelUnavailable, err)
	}
	if len(vectors) != len(skills) {
		return nil, fmt.Errorf("%w: got %d skill embeddings for %d skills", ErrModelUnavailable, len(vectors), len(skills))
	}

	m.skills = skills
	m.vectors = make([][]float64, len(vectors))
	m.norms = make([]float64, len(vectors))
	for i, vector := range vectors {
		if len(vector) != len(vectors[0]) {
			return nil, fmt.Errorf("%w: embedding dimensions differ for skill %q", ErrModelUnavailable, skills[i])
		}
		m.vectors[i] = toFloat64(vector)
		m.norms[i] = floats.Norm(m.vectors[i], 2)
	}
	return m, nil
}

func (m *semanticMatcher) Name() Strategy {
	return Semantic
}

// Match embeds the normalized text and keeps the top-k skills whose cosine
// similarity reaches the threshold. Ties keep vocabulary order.
func (m *semanticMatcher) Match(ctx context.Context, text string) ([]Match, error) {
	normalized := utils.NormalizeText(text)
	if normalized == "" || len(m.vectors) == 0 {
		return nil, nil
	}

	embedded, err := m.embedder.Embed(ctx, []string{normalized})
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if len(embedded) != 1 || len(embedded[0]) != len(m.vectors[0]) {
		return nil, errors.New("unexpected text embedding shape")
	}

	query := toFloat64(embedded[0])
	queryNorm := floats.Norm(query, 2)
	if queryNorm == 0 {
		return nil, nil
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, 0, len(m.vectors))
	for i, vector := range m.vectors {
		if m.norms[i] == 0 {
			continue
		}
		scores = append(scores, scored{idx: i, score: floats.Dot(query, vector) / (queryNorm * m.norms[i])})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if len(scores) > m.topK {
		scores = scores[:m.topK]
	}

	var matches []Match
	for _, s := range scores {
		if s.score < m.threshold {
			continue
		}
		skill := m.skills[s.idx]
		matches = append(matches, Match{
			Skill:      skill,
			Confidence: clamp(s.score),
			Method:     string(Semantic),
			Category:   m.store.CategoryOf(skill),
		})
	}
	return matches, nil
}

func (m *semanticMatcher) Status() Status {
	details := map[string]string{"skills": strconv.Itoa(len(m.vectors))}
	if name := ai.ModelName(m.embedder); name != "" {
		details["model"] = name
	}
	return Status{
		Name:    Semantic,
		Enabled: m.IsEnabled(),
		Reason:  m.reason,
		Details: details,
	}
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func clamp(v float64) float64 {
	return max(0, min(1, v))
}
