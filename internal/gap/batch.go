package gap

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spigell/skill-gap/internal/matching"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	topMissing         = 3
)

// Job is a target document of a batch analysis.
type Job struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"description" json:"description"`
}

// BatchResult is the outcome of one job. Error is set when the job could not
// be analyzed.
type BatchResult struct {
	JobID           string   `json:"job_id"`
	JobTitle        string   `json:"job_title"`
	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   int      `json:"matched_skills"`
	MissingSkills   int      `json:"missing_skills"`
	TopMissing      []string `json:"top_missing,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// BatchReport ranks jobs by how well the source covers them.
type BatchReport struct {
	TotalJobs int           `json:"total_jobs"`
	Analyzed  int           `json:"analyzed"`
	Results   []BatchResult `json:"results"`
}

// AnalyzeBatch analyzes source against every job with at most concurrency
// jobs in flight. The source is extracted once. Jobs without an id get a
// random one. A failed job is kept in the report with its error. Results are
// sorted by match percentage, highest first, keeping input order on ties.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, source string, jobs []Job, strategy matching.Strategy, concurrency int) (*BatchReport, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	sourceMatches, err := a.matcher.Match(ctx, source, strategy)
	if err != nil {
		return nil, fmt.Errorf("extracting source skills: %w", err)
	}

	results := make([]BatchResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		if job.ID == "" {
			job.ID = uuid.NewString()
		}

		g.Go(func() error {
			result := BatchResult{JobID: job.ID, JobTitle: job.Title}

			targetMatches, err := a.matcher.Match(ctx, job.Text, strategy)
			if err != nil {
				err = fmt.Errorf("extracting target skills: %w", err)
				a.logger.Error("analyzing job", zap.String("job_id", job.ID), zap.Error(err))
				result.Error = err.Error()
				results[i] = result
				return nil
			}

			report := a.compare(sourceMatches, targetMatches, strategy)

			result.MatchPercentage = report.MatchPercentage
			result.MatchedSkills = len(report.Matched)
			result.MissingSkills = len(report.Missing)
			result.TopMissing = report.Missing[:min(topMissing, len(report.Missing))]
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	report := &BatchReport{
		TotalJobs: len(jobs),
		Results:   results,
	}
	for _, result := range results {
		if result.Error == "" {
			report.Analyzed++
		}
	}

	return report, nil
}
