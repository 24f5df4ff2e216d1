package matching

import (
	"context"
)

// Matcher is a single matching strategy. Whether a matcher is enabled is
// decided when it is built and never changes afterwards.
type Matcher interface {
	Name() Strategy
	IsEnabled() bool
	Match(ctx context.Context, text string) ([]Match, error)
}

// Status represents runtime information about a matcher.
type Status struct {
	Name    Strategy          `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// toggle carries the enabled state shared by every matcher.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool {
	return !t.disabled
}

// Describe returns status entries for the provided matchers.
func Describe(matchers []Matcher) []Status {
	statuses := make([]Status, 0, len(matchers))
	for _, m := range matchers {
		if reporter, ok := m.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: m.Name(), Enabled: m.IsEnabled()})
	}
	return statuses
}
