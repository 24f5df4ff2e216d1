package matching

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/skill-gap/internal/ai"
	"github.com/spigell/skill-gap/internal/utils"
	"github.com/spigell/skill-gap/internal/vocabulary"
)

const contextualConfidence = 0.7

// cuePatterns capture the phrase following a skill cue, or the word before
// a job title.
var cuePatterns = func() []*regexp.Regexp {
	cues := []string{
		"experience with", "proficient in", "knowledge of", "skilled in",
		"expertise in", "working with", "familiar with",
	}
	patterns := make([]*regexp.Regexp, 0, len(cues)+3)
	for _, cue := range cues {
		patterns = append(patterns, regexp.MustCompile(`(?m)`+cue+` (.+?)(?:,|\.|\band\b|$)`))
	}
	for _, title := range []string{"developer", "engineer", "programmer"} {
		patterns = append(patterns, regexp.MustCompile(`(\w+) `+title))
	}
	return patterns
}()

type contextualMatcher struct {
	toggle

	store   *vocabulary.Store
	phrases ai.PhraseExtractor
	skills  []string
}

func newContextualMatcher(store *vocabulary.Store, phrases ai.PhraseExtractor) *contextualMatcher {
	m := &contextualMatcher{
		store:   store,
		phrases: phrases,
		skills:  store.Skills(),
	}
	if phrases == nil {
		m.disable("no phrase model configured")
	}
	return m
}

func (m *contextualMatcher) Name() Strategy {
	return Contextual
}

// Match collects noun phrases and cue phrases from the lowercased text and
// reports every skill that contains a phrase or is contained in one. The
// first phrase found for a skill becomes its context.
func (m *contextualMatcher) Match(ctx context.Context, text string) ([]Match, error) {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" || len(m.skills) == 0 {
		return nil, nil
	}

	phrases, err := m.phrases.NounPhrases(ctx, lower)
	if err != nil {
		return nil, fmt.Errorf("extracting noun phrases: %w", err)
	}
	phrases = append(phrases, cuePhrases(lower)...)

	var matches []Match
	found := make(map[string]struct{})
	for _, phrase := range phrases {
		normalized := utils.NormalizeText(phrase)
		if normalized == "" {
			continue
		}
		for _, skill := range m.skills {
			if _, dup := found[skill]; dup {
				continue
			}
			if !strings.Contains(normalized, skill) && !strings.Contains(skill, normalized) {
				continue
			}
			found[skill] = struct{}{}
			matches = append(matches, Match{
				Skill:      skill,
				Confidence: contextualConfidence,
				Method:     string(Contextual),
				Context:    strings.TrimSpace(phrase),
				Category:   m.store.CategoryOf(skill),
			})
		}
	}
	return matches, nil
}

func cuePhrases(text string) []string {
	var phrases []string
	for _, pattern := range cuePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if len(match) > 1 {
				phrases = append(phrases, strings.TrimSpace(match[1]))
				continue
			}
			phrases = append(phrases, match[0])
		}
	}
	return phrases
}

func (m *contextualMatcher) Status() Status {
	details := map[string]string{"cue_patterns": fmt.Sprint(len(cuePatterns))}
	if name := ai.ModelName(m.phrases); name != "" {
		details["model"] = name
	}
	return Status{
		Name:    Contextual,
		Enabled: m.IsEnabled(),
		Reason:  m.reason,
		Details: details,
	}
}
