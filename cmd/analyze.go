package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spigell/skill-gap/internal/cache"
	"github.com/spigell/skill-gap/internal/gap"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptRecommendations  = "Show learning recommendations"
	PromptReportByCategory = "Report by category"
	PromptReportToFile     = "Dump report to file"
	PromptExit             = "Exit"
)

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptRecommendations, PromptReportByCategory, PromptReportToFile, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare the skills of a resume with a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addResumeFlags(analyzeCmd)
	analyzeCmd.Flags().String("job-text", "", "job description text")
	analyzeCmd.Flags().String("job-file", "", "job description file (.txt, .md, .html, .pdf or .docx)")
	analyzeCmd.Flags().String("vacancy-id", "", "hh.ru vacancy id to take the job description from")
	analyzeCmd.Flags().Bool("detailed", false, "keep confidences and categories per skill")
	analyzeCmd.Flags().Bool("no-cache", false, "do not read or write the report cache")
	analyzeCmd.Flags().BoolP("yes", "y", false, "print the report and exit without the interactive menu")
}

// analyzed holds whichever report kind was produced.
type analyzed struct {
	plain    *gap.Report
	detailed *gap.DetailedReport
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()
	s := newSession()

	logger := s.logger
	strategy := s.strategy()

	logger.Info("starting the skill-gap analysis", zap.String("version", version), zap.String("strategy", strategy.String()))

	resume, err := s.resumeText(ctx, cmd)
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err))
	}
	job, err := s.jobText(ctx, cmd)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	detailed := flagBool(cmd, "detailed")

	reports := s.reportCache(ctx, flagBool(cmd, "no-cache"))
	defer reports.Close()

	key := cache.Key(resume, job, strategy.String(), detailed)
	result, err := cachedReport(ctx, reports, key, detailed, logger)
	if err != nil {
		logger.Warn("reading cached report", zap.Error(err))
	}

	if result == nil {
		analyzer := gap.New(s.engine(ctx), s.store, logger)
		result = &analyzed{}
		if detailed {
			result.detailed, err = analyzer.AnalyzeDetailed(ctx, resume, job, strategy)
		} else {
			result.plain, err = analyzer.Analyze(ctx, resume, job, strategy)
		}
		if err != nil {
			logger.Fatal("analyzing skill gap", zap.Error(err))
		}

		if err := storeReport(ctx, reports, key, result); err != nil {
			logger.Warn("caching report", zap.Error(err))
		}
	}

	if err := printJSON(cmd, result.value()); err != nil {
		logger.Fatal("printing report", zap.Error(err))
	}

	if flagBool(cmd, "yes") {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(cmd, action, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *session) handleAction(cmd *cobra.Command, action string, result *analyzed) error {
	switch action {
	case PromptRecommendations:
		return printJSON(cmd, s.store.RecommendationsFor(result.missing()))
	case PromptReportByCategory:
		return printJSON(cmd, result.byCategory(s))
	case PromptReportToFile:
		var (
			filename string
			err      error
		)
		if result.detailed != nil {
			filename, err = result.detailed.DumpToTmpFile()
		} else {
			filename, err = result.plain.DumpToTmpFile()
		}
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		s.logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (a *analyzed) value() any {
	if a.detailed != nil {
		return a.detailed
	}
	return a.plain
}

func (a *analyzed) missing() []string {
	if a.detailed != nil {
		return sortedKeys(a.detailed.Missing)
	}
	return a.plain.Missing
}

func (a *analyzed) byCategory(s *session) gap.CategoryReport {
	if a.plain != nil {
		return a.plain.ReportByCategory(s.store)
	}
	plain := &gap.Report{
		Matched:    sortedKeys(a.detailed.Matched),
		Missing:    sortedKeys(a.detailed.Missing),
		Additional: sortedKeys(a.detailed.Additional),
	}
	return plain.ReportByCategory(s.store)
}

// reportCache connects to Redis when the cache is enabled. Connection
// failures only disable caching.
func (s *session) reportCache(ctx context.Context, disabled bool) cache.Cache {
	if disabled || !s.config.Cache.Enabled {
		return cache.Nop{}
	}

	redis, err := cache.NewRedis(ctx, s.config.Cache.Redis, s.logger)
	if err != nil {
		s.logger.Warn("report cache is not available", zap.Error(err))
		return cache.Nop{}
	}
	return redis
}

func cachedReport(ctx context.Context, reports cache.Cache, key string, detailed bool, logger *zap.Logger) (*analyzed, error) {
	data, found, err := reports.Get(ctx, key)
	if err != nil || !found {
		return nil, err
	}

	result := &analyzed{}
	if detailed {
		err = json.Unmarshal(data, &result.detailed)
	} else {
		err = json.Unmarshal(data, &result.plain)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding cached report: %w", err)
	}

	logger.Debug("report taken from cache", zap.String("key", key))
	return result, nil
}

func storeReport(ctx context.Context, reports cache.Cache, key string, result *analyzed) error {
	data, err := json.Marshal(result.value())
	if err != nil {
		return err
	}
	return reports.Set(ctx, key, data)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
