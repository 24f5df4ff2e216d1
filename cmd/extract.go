package cmd

import (
	"context"
	"math"

	"github.com/spigell/skill-gap/internal/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills from a text",
	Run: func(cmd *cobra.Command, _ []string) {
		extract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().String("text", "", "text to extract skills from")
	extractCmd.Flags().String("file", "", "file to extract skills from (.txt, .md, .html, .pdf or .docx)")
}

type extractedSkill struct {
	Skill      string  `json:"skill"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
	Method     string  `json:"method"`
	Context    string  `json:"context,omitempty"`
}

type extraction struct {
	Total    int                         `json:"total_skills"`
	Skills   []string                    `json:"skills"`
	Strategy matching.Strategy           `json:"strategy"`
	Detailed map[string][]extractedSkill `json:"detailed"`
}

func extract(cmd *cobra.Command) {
	ctx := context.Background()
	s := newSession()

	text, err := readText(flagString(cmd, "text"), flagString(cmd, "file"), "text")
	if err != nil {
		s.logger.Fatal("reading text", zap.Error(err))
	}

	strategy := s.strategy()
	matches, err := s.engine(ctx).Match(ctx, text, strategy)
	if err != nil {
		s.logger.Fatal("extracting skills", zap.Error(err))
	}

	if err := printJSON(cmd, groupByConfidence(matches, strategy)); err != nil {
		s.logger.Fatal("printing skills", zap.Error(err))
	}
}

// groupByConfidence buckets matches into high (> 0.8), medium (> 0.5) and
// low confidence.
func groupByConfidence(matches []matching.Match, strategy matching.Strategy) extraction {
	result := extraction{
		Total:    len(matches),
		Skills:   make([]string, 0, len(matches)),
		Strategy: strategy,
		Detailed: make(map[string][]extractedSkill),
	}

	for _, m := range matches {
		level := "low"
		switch {
		case m.Confidence > 0.8:
			level = "high"
		case m.Confidence > 0.5:
			level = "medium"
		}

		result.Skills = append(result.Skills, m.Skill)
		result.Detailed[level] = append(result.Detailed[level], extractedSkill{
			Skill:      m.Skill,
			Confidence: math.Round(m.Confidence*1000) / 1000,
			Category:   m.Category,
			Method:     m.Method,
			Context:    m.Context,
		})
	}

	return result
}
