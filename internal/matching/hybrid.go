package matching

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/spigell/skill-gap/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxHybridContexts = 2

type aggregate struct {
	skill    string
	category string
	score    float64
	methods  []string
	contexts []string
}

// hybrid runs every enabled matcher concurrently and merges the results in
// matcher order. A matcher failing at call time is logged and contributes
// nothing. Scores are normalized by the sum of all configured weights, so
// disabled matchers still lower the attainable confidence.
func (e *Engine) hybrid(ctx context.Context, text string, weights Weights) []Match {
	results := make([][]Match, len(e.matchers))

	var g errgroup.Group
	for i, m := range e.matchers {
		if !m.IsEnabled() || weights.Of(m.Name()) == 0 {
			continue
		}
		g.Go(func() error {
			matches, err := e.run(ctx, m, text)
			if err != nil {
				logger.WithStrategy(e.logger, m.Name().String()).Warn("strategy failed, skipping it", zap.Error(err))
				return nil
			}
			results[i] = matches
			return nil
		})
	}
	_ = g.Wait()

	var order []string
	merged := make(map[string]*aggregate)
	for i, m := range e.matchers {
		weight := weights.Of(m.Name())
		for _, match := range results[i] {
			agg, ok := merged[match.Skill]
			if !ok {
				agg = &aggregate{skill: match.Skill, category: match.Category}
				merged[match.Skill] = agg
				order = append(order, match.Skill)
			}
			agg.score += match.Confidence * weight
			if !slices.Contains(agg.methods, match.Method) {
				agg.methods = append(agg.methods, match.Method)
			}
			if match.Context != "" {
				agg.contexts = append(agg.contexts, match.Context)
			}
		}
	}

	maxScore := weights.Sum()
	matches := make([]Match, 0, len(order))
	for _, skill := range order {
		agg := merged[skill]
		confidence := clamp(agg.score / maxScore)
		if confidence < e.cfg.MinConfidence {
			continue
		}

		contexts := agg.contexts
		if len(contexts) > maxHybridContexts {
			contexts = contexts[:maxHybridContexts]
		}

		matches = append(matches, Match{
			Skill:      agg.skill,
			Confidence: confidence,
			Method:     strings.Join(agg.methods, "+"),
			Context:    strings.Join(contexts, "; "),
			Category:   agg.category,
		})
	}

	ByConfidence(matches)
	return matches
}

// run executes a single matcher and logs the step.
func (e *Engine) run(ctx context.Context, m Matcher, text string) ([]Match, error) {
	started := time.Now()
	matches, err := m.Match(ctx, text)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("matching step",
		zap.String(logger.FieldStrategy, m.Name().String()),
		zap.Int("matches", len(matches)),
		zap.Duration("took", time.Since(started)),
	)
	return matches, nil
}
