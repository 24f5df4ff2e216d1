package matching

import (
	"errors"
	"fmt"
)

// Weights are the per-strategy hybrid weights.
type Weights struct {
	Exact      float64 `mapstructure:"exact" json:"exact"`
	Fuzzy      float64 `mapstructure:"fuzzy" json:"fuzzy"`
	Semantic   float64 `mapstructure:"semantic" json:"semantic"`
	Contextual float64 `mapstructure:"contextual" json:"contextual"`
}

// Of returns the weight of a single strategy.
func (w Weights) Of(s Strategy) float64 {
	switch s {
	case Exact:
		return w.Exact
	case Fuzzy:
		return w.Fuzzy
	case Semantic:
		return w.Semantic
	case Contextual:
		return w.Contextual
	default:
		return 0
	}
}

// Sum is the highest score a skill can collect.
func (w Weights) Sum() float64 {
	return w.Exact + w.Fuzzy + w.Semantic + w.Contextual
}

// Config tunes the matching engine.
type Config struct {
	ExactMatchBoost   float64 `mapstructure:"exact-match-boost"`
	SemanticThreshold float64 `mapstructure:"semantic-threshold"`
	FuzzyThreshold    float64 `mapstructure:"fuzzy-threshold"`
	// ContextWindow is the number of characters kept around an exact hit.
	ContextWindow int     `mapstructure:"context-window"`
	MinConfidence float64 `mapstructure:"min-confidence"`
	TopK          int     `mapstructure:"top-k"`
	MaxFeatures   int     `mapstructure:"max-features"`
	Weights       Weights `mapstructure:"weights"`
}

// DefaultConfig returns the stock engine settings.
func DefaultConfig() Config {
	return Config{
		ExactMatchBoost:   1.0,
		SemanticThreshold: 0.55,
		FuzzyThreshold:    0.85,
		ContextWindow:     50,
		MinConfidence:     0.3,
		TopK:              10,
		MaxFeatures:       5000,
		Weights: Weights{
			Exact:      1.0,
			Fuzzy:      0.7,
			Semantic:   0.8,
			Contextual: 0.6,
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error

	if c.ExactMatchBoost < 0 {
		errs = append(errs, fmt.Errorf("exact-match-boost must not be negative, got %v", c.ExactMatchBoost))
	}
	for _, bound := range []struct {
		name  string
		value float64
	}{
		{"semantic-threshold", c.SemanticThreshold},
		{"fuzzy-threshold", c.FuzzyThreshold},
		{"min-confidence", c.MinConfidence},
	} {
		if bound.value < 0 || bound.value > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", bound.name, bound.value))
		}
	}
	if c.ContextWindow < 0 {
		errs = append(errs, fmt.Errorf("context-window must not be negative, got %d", c.ContextWindow))
	}
	if c.TopK <= 0 {
		errs = append(errs, fmt.Errorf("top-k must be positive, got %d", c.TopK))
	}
	if c.MaxFeatures <= 0 {
		errs = append(errs, fmt.Errorf("max-features must be positive, got %d", c.MaxFeatures))
	}
	w := c.Weights
	if w.Exact < 0 || w.Fuzzy < 0 || w.Semantic < 0 || w.Contextual < 0 {
		errs = append(errs, fmt.Errorf("weights must not be negative, got %+v", w))
	} else if w.Sum() <= 0 {
		errs = append(errs, errors.New("at least one weight must be positive"))
	}

	return errors.Join(errs...)
}
