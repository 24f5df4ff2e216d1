package matching

import (
	"context"
	"strconv"

	"github.com/spigell/skill-gap/internal/utils"
	"github.com/spigell/skill-gap/internal/vocabulary"
)

type exactMatcher struct {
	toggle

	store    *vocabulary.Store
	variants []string
	boost    float64
	window   int
}

func newExactMatcher(store *vocabulary.Store, cfg Config) *exactMatcher {
	return &exactMatcher{
		store:    store,
		variants: store.Variants(),
		boost:    cfg.ExactMatchBoost,
		window:   cfg.ContextWindow,
	}
}

func (m *exactMatcher) Name() Strategy {
	return Exact
}

// Match scans the normalized text for every variant, longest first. A
// variant occurrence inside a span already claimed by a longer variant is
// ignored, so "node.js" is never reported as "node" as well.
func (m *exactMatcher) Match(_ context.Context, text string) ([]Match, error) {
	normalized := utils.NormalizeText(text)
	if normalized == "" || len(m.variants) == 0 {
		return nil, nil
	}

	confidence := min(1.0, 1.0*m.boost)

	var (
		matches []Match
		claimed [][2]int
		found   = make(map[string]struct{})
	)

	for _, variant := range m.variants {
		var (
			first [2]int
			hit   bool
		)
		for _, span := range wordOccurrences(normalized, variant) {
			if overlaps(claimed, span) {
				continue
			}
			claimed = append(claimed, span)
			if !hit {
				first, hit = span, true
			}
		}
		if !hit {
			continue
		}

		skill, ok := m.store.Resolve(variant)
		if !ok {
			continue
		}
		if _, dup := found[skill]; dup {
			continue
		}
		found[skill] = struct{}{}

		matches = append(matches, Match{
			Skill:      skill,
			Confidence: confidence,
			Method:     string(Exact),
			Context:    m.context(normalized, first),
			Category:   m.store.CategoryOf(skill),
		})
	}

	return matches, nil
}

func (m *exactMatcher) context(text string, span [2]int) string {
	start := max(0, span[0]-m.window)
	end := min(len(text), span[1]+m.window)
	return text[start:end]
}

func (m *exactMatcher) Status() Status {
	return Status{
		Name:    Exact,
		Enabled: m.IsEnabled(),
		Reason:  m.reason,
		Details: map[string]string{"variants": strconv.Itoa(len(m.variants))},
	}
}

func overlaps(spans [][2]int, span [2]int) bool {
	for _, s := range spans {
		if span[0] < s[1] && s[0] < span[1] {
			return true
		}
	}
	return false
}
