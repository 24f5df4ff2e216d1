// Package gap compares the skills of two documents.
package gap

import (
	"context"
	"fmt"

	"github.com/spigell/skill-gap/internal/matching"
	"github.com/spigell/skill-gap/internal/vocabulary"
	"go.uber.org/zap"
)

// recommendedMissing is how many missing skills get recommendations in a
// plain report.
const recommendedMissing = 5

// Matcher extracts skills from text.
type Matcher interface {
	Match(ctx context.Context, text string, strategy matching.Strategy) ([]matching.Match, error)
}

// Analyzer computes gap reports. It is safe for concurrent use.
type Analyzer struct {
	matcher Matcher
	store   *vocabulary.Store
	logger  *zap.Logger
}

// New returns an Analyzer backed by matcher and the recommendations of store.
func New(matcher Matcher, store *vocabulary.Store, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		matcher: matcher,
		store:   store,
		logger:  logger,
	}
}

// Analyze compares the skill sets of source and target. Confidences are
// discarded; recommendations are attached for the first missing skills.
func (a *Analyzer) Analyze(ctx context.Context, source, target string, strategy matching.Strategy) (*Report, error) {
	sourceMatches, targetMatches, err := a.extract(ctx, source, target, strategy)
	if err != nil {
		return nil, err
	}
	return a.compare(sourceMatches, targetMatches, strategy), nil
}

// compare builds a plain report from already extracted skills.
func (a *Analyzer) compare(sourceMatches, targetMatches []matching.Match, strategy matching.Strategy) *Report {
	sourceSkills := skillSet(sourceMatches)
	targetSkills := skillSet(targetMatches)

	report := &Report{
		Matched:           []string{},
		Missing:           []string{},
		Additional:        []string{},
		TotalTargetSkills: len(targetSkills),
		TotalSourceSkills: len(sourceSkills),
		Strategy:          strategy,
	}

	for _, skill := range sortedKeys(targetSkills) {
		if _, ok := sourceSkills[skill]; ok {
			report.Matched = append(report.Matched, skill)
			continue
		}
		report.Missing = append(report.Missing, skill)
	}
	for _, skill := range sortedKeys(sourceSkills) {
		if _, ok := targetSkills[skill]; !ok {
			report.Additional = append(report.Additional, skill)
		}
	}

	report.MatchPercentage = percentage(len(report.Matched), len(targetSkills))
	if len(report.Missing) > 0 {
		report.Recommendations = a.store.RecommendationsFor(report.Missing[:min(recommendedMissing, len(report.Missing))])
	}

	a.logger.Debug("gap analyzed",
		zap.String("strategy", strategy.String()),
		zap.Int("matched", len(report.Matched)),
		zap.Int("missing", len(report.Missing)),
		zap.Int("additional", len(report.Additional)),
		zap.Float64("match_percentage", report.MatchPercentage),
	)

	return report
}

// AnalyzeDetailed is Analyze keeping per-skill confidences and categories.
// Every missing skill carries its recommendation.
func (a *Analyzer) AnalyzeDetailed(ctx context.Context, source, target string, strategy matching.Strategy) (*DetailedReport, error) {
	sourceMatches, targetMatches, err := a.extract(ctx, source, target, strategy)
	if err != nil {
		return nil, err
	}

	sourceSkills := matchesBySkill(sourceMatches)
	targetSkills := matchesBySkill(targetMatches)

	report := &DetailedReport{
		Matched:           make(map[string]MatchedSkill),
		Missing:           make(map[string]MissingSkill),
		Additional:        make(map[string]AdditionalSkill),
		TotalTargetSkills: len(targetSkills),
		TotalSourceSkills: len(sourceSkills),
		Strategy:          strategy,
	}

	for skill, job := range targetSkills {
		if resume, ok := sourceSkills[skill]; ok {
			report.Matched[skill] = MatchedSkill{
				ResumeConfidence: resume.Confidence,
				JobConfidence:    job.Confidence,
				Category:         job.Category,
			}
			continue
		}
		report.Missing[skill] = MissingSkill{
			Confidence:      job.Confidence,
			Category:        job.Category,
			Recommendations: a.store.Recommendation(skill),
		}
	}
	for skill, resume := range sourceSkills {
		if _, ok := targetSkills[skill]; !ok {
			report.Additional[skill] = AdditionalSkill{
				Confidence: resume.Confidence,
				Category:   resume.Category,
			}
		}
	}

	report.MatchPercentage = percentage(len(report.Matched), len(targetSkills))
	return report, nil
}

func (a *Analyzer) extract(ctx context.Context, source, target string, strategy matching.Strategy) ([]matching.Match, []matching.Match, error) {
	sourceMatches, err := a.matcher.Match(ctx, source, strategy)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting source skills: %w", err)
	}
	targetMatches, err := a.matcher.Match(ctx, target, strategy)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting target skills: %w", err)
	}
	return sourceMatches, targetMatches, nil
}

func skillSet(matches []matching.Match) map[string]struct{} {
	set := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		set[m.Skill] = struct{}{}
	}
	return set
}

// matchesBySkill keeps the first match of every skill.
func matchesBySkill(matches []matching.Match) map[string]matching.Match {
	bySkill := make(map[string]matching.Match, len(matches))
	for _, m := range matches {
		if _, ok := bySkill[m.Skill]; !ok {
			bySkill[m.Skill] = m
		}
	}
	return bySkill
}
