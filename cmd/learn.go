package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Build a learning path for a list of skills",
	Run: func(cmd *cobra.Command, _ []string) {
		learn(cmd)
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)

	learnCmd.Flags().StringSlice("skills", nil, "skills to learn, comma separated, most important first")
	learnCmd.Flags().String("level", "beginner", "current level: beginner, intermediate or advanced")
	learnCmd.Flags().String("time", "3-6 months", "time available for learning")
}

func learn(cmd *cobra.Command) {
	s := newSession()

	requested, err := cmd.Flags().GetStringSlice("skills")
	if err != nil {
		s.logger.Fatal("reading skills", zap.Error(err))
	}

	skills := make([]string, 0, len(requested))
	for _, skill := range requested {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}

	path, err := s.store.LearningPath(skills, flagString(cmd, "level"), flagString(cmd, "time"))
	if err != nil {
		s.logger.Fatal("building learning path", zap.Error(err), zap.String("hint", "pass skills with --skills"))
	}

	if len(path.Steps) < len(skills) {
		s.logger.Warn("unknown skills were skipped",
			zap.Int("requested", len(skills)),
			zap.Int("known", len(path.Steps)),
		)
	}

	if err := printJSON(cmd, path); err != nil {
		s.logger.Fatal("printing learning path", zap.Error(err))
	}
}
