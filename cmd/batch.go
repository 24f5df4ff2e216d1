package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spigell/skill-gap/internal/gap"
	"github.com/spigell/skill-gap/internal/headhunter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank several job descriptions by how well a resume covers them",
	Long: `Rank several job descriptions by how well a resume covers them.

Jobs are read from a yaml file:

  jobs:
    - id: backend-1
      title: Backend developer
      description: Experience with Go, PostgreSQL and Kubernetes.

or taken from an hh.ru vacancy search (--search, or headhunter.search in the config).`,
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	analyzeCmd.AddCommand(batchCmd)

	addResumeFlags(batchCmd)
	batchCmd.Flags().String("jobs-file", "", "yaml file with jobs")
	batchCmd.Flags().String("search", "", "hh.ru vacancy search text")
	batchCmd.Flags().Int("limit", 20, "maximum number of vacancies taken from the search")
	batchCmd.Flags().Int("concurrency", 0, "jobs analyzed at once (default from batch.concurrency)")
}

type jobsFile struct {
	Jobs []gap.Job `yaml:"jobs"`
}

func batch(cmd *cobra.Command) {
	ctx := context.Background()
	s := newSession()

	logger := s.logger
	strategy := s.strategy()

	resume, err := s.resumeText(ctx, cmd)
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err))
	}

	jobs, err := s.batchJobs(ctx, cmd)
	if err != nil {
		logger.Fatal("reading jobs", zap.Error(err))
	}
	if len(jobs) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	concurrency := s.config.Batch.Concurrency
	if c, err := cmd.Flags().GetInt("concurrency"); err == nil && c > 0 {
		concurrency = c
	}

	logger.Info("starting batch analysis",
		zap.Int("jobs", len(jobs)),
		zap.Int("concurrency", concurrency),
		zap.String("strategy", strategy.String()),
	)

	analyzer := gap.New(s.engine(ctx), s.store, logger)
	report, err := analyzer.AnalyzeBatch(ctx, resume, jobs, strategy, concurrency)
	if err != nil {
		logger.Fatal("analyzing jobs", zap.Error(err))
	}

	if err := printJSON(cmd, report); err != nil {
		logger.Fatal("printing report", zap.Error(err))
	}
}

func (s *session) batchJobs(ctx context.Context, cmd *cobra.Command) ([]gap.Job, error) {
	if path := flagString(cmd, "jobs-file"); path != "" {
		return readJobsFile(path)
	}

	params := s.config.Headhunter.Search
	if text := flagString(cmd, "search"); text != "" {
		params = &headhunter.SearchParams{Text: text}
	}
	if params == nil || params.Text == "" {
		return nil, errors.New("either --jobs-file or a vacancy search is required")
	}
	if limit, err := cmd.Flags().GetInt("limit"); err == nil && params.Limit == 0 {
		params.Limit = limit
	}

	hh, err := s.headhunter(ctx, false)
	if err != nil {
		return nil, err
	}

	vacancies, err := hh.Search(params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	s.logger.Info("getting vacancies", zap.String("search", params.Text), zap.Int("count", vacancies.Len()))

	jobs := make([]gap.Job, 0, vacancies.Len())
	for _, vacancy := range vacancies.Items {
		jobs = append(jobs, vacancyJob(vacancy))
	}
	return jobs, nil
}

func vacancyJob(vacancy *headhunter.Vacancy) gap.Job {
	title := vacancy.Name
	if vacancy.Employer.Name != "" {
		title = fmt.Sprintf("%s / %s", vacancy.Name, vacancy.Employer.Name)
	}
	return gap.Job{
		ID:    vacancy.ID,
		Title: title,
		Text:  vacancy.JobText(),
	}
}

func readJobsFile(path string) ([]gap.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file jobsFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return file.Jobs, nil
}
