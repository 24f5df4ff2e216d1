package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigell/skill-gap/internal/ai"
	"github.com/spigell/skill-gap/internal/vocabulary"
	"go.uber.org/zap"
)

// Models are the optional black-box models used by the semantic and
// contextual strategies.
type Models struct {
	Embedder ai.Embedder
	Phrases  ai.PhraseExtractor
}

// checkText is segmented once at startup to check the phrase model.
const checkText = "experience with go and python"

// Engine runs matching strategies over a vocabulary. It is immutable after
// New and safe for concurrent use.
type Engine struct {
	store    *vocabulary.Store
	cfg      Config
	logger   *zap.Logger
	matchers []Matcher
}

// New validates cfg, prepares every strategy and loads the models.
// A configured model that fails to load makes New return ErrModelUnavailable;
// a missing model only disables its strategy.
func New(ctx context.Context, store *vocabulary.Store, models Models, cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching config: %w", err)
	}
	if store == nil {
		store = vocabulary.Build(vocabulary.Source{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	semantic, err := newSemanticMatcher(ctx, store, models.Embedder, cfg)
	if err != nil {
		return nil, err
	}

	if models.Phrases != nil {
		if _, err := models.Phrases.NounPhrases(ctx, checkText); err != nil {
			return nil, fmt.Errorf("%w: phrase model: %w", ErrModelUnavailable, err)
		}
	}

	e := &Engine{
		store:  store,
		cfg:    cfg,
		logger: logger,
		matchers: []Matcher{
			newExactMatcher(store, cfg),
			newFuzzyMatcher(store, cfg),
			semantic,
			newContextualMatcher(store, models.Phrases),
		},
	}

	if store.Empty() {
		logger.Warn("vocabulary is empty, every strategy will return no matches")
	}
	for _, status := range e.Status() {
		fields := []zap.Field{
			zap.String("name", status.Name.String()),
			zap.Bool("enabled", status.Enabled),
		}
		if status.Reason != "" {
			fields = append(fields, zap.String("reason", status.Reason))
		}
		for key, value := range status.Details {
			fields = append(fields, zap.String(key, value))
		}
		logger.Debug("strategy ready", fields...)
	}

	return e, nil
}

// Match extracts skills from text with the given strategy.
func (e *Engine) Match(ctx context.Context, text string, strategy Strategy) ([]Match, error) {
	return e.MatchWeighted(ctx, text, strategy, e.cfg.Weights)
}

// MatchWeighted is Match with explicit hybrid weights. Weights are ignored
// by single strategies.
func (e *Engine) MatchWeighted(ctx context.Context, text string, strategy Strategy, weights Weights) ([]Match, error) {
	switch strategy {
	case Hybrid:
		if weights.Sum() <= 0 {
			return nil, errors.New("hybrid weights must sum to a positive value")
		}
		return e.hybrid(ctx, text, weights), nil
	case Exact, Fuzzy, Semantic, Contextual:
		m := e.matcher(strategy)
		if !m.IsEnabled() {
			return nil, fmt.Errorf("%w: %s strategy is disabled", ErrModelUnavailable, strategy)
		}
		matches, err := e.run(ctx, m, text)
		if err != nil {
			return nil, fmt.Errorf("%s strategy: %w", strategy, err)
		}
		return matches, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrInvalidStrategy, strategy)
	}
}

func (e *Engine) matcher(strategy Strategy) Matcher {
	for _, m := range e.matchers {
		if m.Name() == strategy {
			return m
		}
	}
	return nil
}

// Status describes every single strategy.
func (e *Engine) Status() []Status {
	return Describe(e.matchers)
}

// Enabled reports whether a strategy can run.
func (e *Engine) Enabled(strategy Strategy) bool {
	if strategy == Hybrid {
		return true
	}
	m := e.matcher(strategy)
	return m != nil && m.IsEnabled()
}

// Store returns the vocabulary the engine matches against.
func (e *Engine) Store() *vocabulary.Store {
	return e.store
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
