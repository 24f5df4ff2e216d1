package matching

import (
	"fmt"
	"strings"
)

// Strategy selects a matching algorithm.
type Strategy string

const (
	Exact      Strategy = "exact"
	Fuzzy      Strategy = "fuzzy"
	Semantic   Strategy = "semantic"
	Contextual Strategy = "contextual"
	Hybrid     Strategy = "hybrid"
)

// Strategies lists every strategy. Single strategies come first, in the
// order the hybrid aggregator merges them.
func Strategies() []Strategy {
	return []Strategy{Exact, Fuzzy, Semantic, Contextual, Hybrid}
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	strategy := Strategy(strings.ToLower(strings.TrimSpace(name)))
	switch strategy {
	case Exact, Fuzzy, Semantic, Contextual, Hybrid:
		return strategy, nil
	default:
		return "", fmt.Errorf("%w %q: must be one of %s", ErrInvalidStrategy, name, strategyNames())
	}
}

func (s Strategy) String() string {
	return string(s)
}

func strategyNames() string {
	names := make([]string, 0, len(Strategies()))
	for _, s := range Strategies() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
