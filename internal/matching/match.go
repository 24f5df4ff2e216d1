package matching

import (
	"sort"
	"strings"
)

// Match is a skill found in a text.
type Match struct {
	Skill      string  `json:"skill" yaml:"skill"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	// Method is a strategy tag, or several tags joined with "+" for hybrid matches.
	Method   string `json:"method" yaml:"method"`
	Context  string `json:"context,omitempty" yaml:"context,omitempty"`
	Category string `json:"category" yaml:"category"`
}

// Skills returns the distinct skill names of matches, sorted.
func Skills(matches []Match) []string {
	seen := make(map[string]struct{}, len(matches))
	skills := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Skill]; ok {
			continue
		}
		seen[m.Skill] = struct{}{}
		skills = append(skills, m.Skill)
	}
	sort.Strings(skills)
	return skills
}

// ByConfidence sorts matches by descending confidence, then by skill name.
func ByConfidence(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Skill < matches[j].Skill
	})
}

// Methods splits a Method value into strategy tags.
func (m Match) Methods() []string {
	if m.Method == "" {
		return nil
	}
	return strings.Split(m.Method, "+")
}
