package matching

import (
	"context"
	"strconv"

	"github.com/spigell/skill-gap/internal/vocabulary"
)

type fuzzyMatcher struct {
	toggle

	store     *vocabulary.Store
	space     *termSpace
	docSkill  []string
	threshold float64
}

// newFuzzyMatcher builds the corpus: one document per canonical skill
// followed by one per declared variant of that skill. docSkill maps every
// document back to its skill.
func newFuzzyMatcher(store *vocabulary.Store, cfg Config) *fuzzyMatcher {
	var corpus, docSkill []string
	for _, skill := range store.Skills() {
		corpus = append(corpus, skill)
		docSkill = append(docSkill, skill)
		for _, variant := range store.Synonyms(skill) {
			corpus = append(corpus, variant)
			docSkill = append(docSkill, skill)
		}
	}

	return &fuzzyMatcher{
		store:     store,
		space:     fitTermSpace(corpus, cfg.MaxFeatures),
		docSkill:  docSkill,
		threshold: cfg.FuzzyThreshold,
	}
}

func (m *fuzzyMatcher) Name() Strategy {
	return Fuzzy
}

// Match compares the text vector with every corpus document by cosine
// similarity. The first document of a skill at or above the threshold wins.
func (m *fuzzyMatcher) Match(_ context.Context, text string) ([]Match, error) {
	if len(m.docSkill) == 0 {
		return nil, nil
	}

	query := m.space.transform(text)
	if len(query) == 0 {
		return nil, nil
	}

	var matches []Match
	found := make(map[string]struct{})
	for i, doc := range m.space.docs {
		score := query.dot(doc)
		if score <= 0 || score < m.threshold {
			continue
		}
		skill := m.docSkill[i]
		if _, dup := found[skill]; dup {
			continue
		}
		found[skill] = struct{}{}
		matches = append(matches, Match{
			Skill:      skill,
			Confidence: min(1.0, score),
			Method:     string(Fuzzy),
			Category:   m.store.CategoryOf(skill),
		})
	}
	return matches, nil
}

func (m *fuzzyMatcher) Status() Status {
	return Status{
		Name:    Fuzzy,
		Enabled: m.IsEnabled(),
		Reason:  m.reason,
		Details: map[string]string{
			"documents": strconv.Itoa(len(m.docSkill)),
			"features":  strconv.Itoa(len(m.space.features)),
		},
	}
}
