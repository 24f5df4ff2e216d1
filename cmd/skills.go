package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/skill-gap/internal/matching"
	"github.com/spigell/skill-gap/internal/vocabulary"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const relatedInfoLimit = 10

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Browse the skill vocabulary",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills grouped by category",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		listing := s.store.List(flagString(cmd, "category"), flagString(cmd, "search"))
		if err := printJSON(cmd, listing); err != nil {
			s.logger.Fatal("printing skills", zap.Error(err))
		}
	},
}

var skillsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List skill categories",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		categories := s.store.Categories()
		err := printJSON(cmd, map[string]any{
			"categories": categories,
			"count":      len(categories),
		})
		if err != nil {
			s.logger.Fatal("printing categories", zap.Error(err))
		}
	},
}

var skillsInfoCmd = &cobra.Command{
	Use:   "info <skill>",
	Short: "Show category, synonyms, related skills and learning resources of a skill",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		info, err := skillInfo(s.store, args[0])
		if err != nil {
			s.logger.Fatal("looking up skill", zap.Error(err))
		}
		if err := printJSON(cmd, info); err != nil {
			s.logger.Fatal("printing skill", zap.Error(err))
		}
	},
}

var skillsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vocabulary as csv or json",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()

		out := cmd.OutOrStdout()
		if path := flagString(cmd, "output"); path != "" {
			file, err := os.Create(path)
			if err != nil {
				s.logger.Fatal("creating export file", zap.Error(err))
			}
			defer file.Close()
			out = file
		}

		if err := exportVocabulary(out, s.store, flagString(cmd, "format")); err != nil {
			s.logger.Fatal("exporting vocabulary", zap.Error(err))
		}
	},
}

var skillsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vocabulary and engine statistics",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		engine := s.engine(context.Background())

		err := printJSON(cmd, map[string]any{
			"system": map[string]any{
				"version":               version,
				"total_skills":          len(s.store.Skills()),
				"total_categories":      len(s.store.Categories()),
				"total_recommendations": s.store.Curated(),
				"cache_enabled":         s.config.Cache.Enabled,
			},
			"models": map[string]any{
				"embedder":            provider(s.config.Models.Embedder),
				"phrases":             provider(s.config.Models.Phrases),
				"matching_strategies": matching.Strategies(),
				"strategies":          engine.Status(),
			},
		})
		if err != nil {
			s.logger.Fatal("printing stats", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)
	skillsCmd.AddCommand(skillsListCmd, skillsCategoriesCmd, skillsInfoCmd, skillsExportCmd, skillsStatsCmd)

	skillsListCmd.Flags().String("category", "", "only skills of this category")
	skillsListCmd.Flags().String("search", "", "only skills containing this term")

	skillsExportCmd.Flags().String("format", "csv", "export format: csv or json")
	skillsExportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
}

type skillDetails struct {
	Skill           string                    `json:"skill"`
	Category        string                    `json:"category"`
	RelatedSkills   []string                  `json:"related_skills"`
	Synonyms        []string                  `json:"synonyms"`
	Recommendations vocabulary.Recommendation `json:"recommendations"`
}

// skillInfo describes a skill, falling back to the first skill containing
// the term or contained in it.
func skillInfo(store *vocabulary.Store, term string) (skillDetails, error) {
	skill, ok := store.Find(term)
	if !ok {
		return skillDetails{}, fmt.Errorf("skill %q not found", term)
	}

	return skillDetails{
		Skill:           skill,
		Category:        store.CategoryOf(skill),
		RelatedSkills:   store.RelatedSkills(skill, relatedInfoLimit),
		Synonyms:        store.Synonyms(skill),
		Recommendations: store.Recommendation(skill),
	}, nil
}

func exportVocabulary(w io.Writer, store *vocabulary.Store, format string) error {
	switch strings.ToLower(format) {
	case "json":
		categories := make(map[string][]string)
		synonyms := make(map[string][]string)
		for _, category := range store.Categories() {
			categories[category] = store.SkillsIn(category)
		}
		for _, skill := range store.Skills() {
			if variants := store.Synonyms(skill); len(variants) > 0 {
				synonyms[skill] = variants
			}
		}

		return printJSONTo(w, map[string]any{
			"skills":     store.Skills(),
			"categories": categories,
			"synonyms":   synonyms,
			"total":      len(store.Skills()),
		})
	case "csv", "":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"skill", "category", "synonyms"}); err != nil {
			return err
		}
		for _, skill := range store.Skills() {
			record := []string{skill, store.CategoryOf(skill), strings.Join(store.Synonyms(skill), ", ")}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
