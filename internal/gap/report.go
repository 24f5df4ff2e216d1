package gap

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/spigell/skill-gap/internal/matching"
	"github.com/spigell/skill-gap/internal/vocabulary"
)

// Report is a gap analysis over skill names.
type Report struct {
	Matched           []string                             `json:"matched_skills"`
	Missing           []string                             `json:"missing_skills"`
	Additional        []string                             `json:"additional_skills"`
	MatchPercentage   float64                              `json:"match_percentage"`
	TotalTargetSkills int                                  `json:"total_job_skills"`
	TotalSourceSkills int                                  `json:"total_resume_skills"`
	Recommendations   map[string]vocabulary.Recommendation `json:"recommendations,omitempty"`
	Strategy          matching.Strategy                    `json:"strategy"`
}

// MatchedSkill is a target skill also found in the source.
type MatchedSkill struct {
	ResumeConfidence float64 `json:"resume_confidence"`
	JobConfidence    float64 `json:"job_confidence"`
	Category         string  `json:"category"`
}

// MissingSkill is a target skill absent from the source.
type MissingSkill struct {
	Confidence      float64                   `json:"confidence"`
	Category        string                    `json:"category"`
	Recommendations vocabulary.Recommendation `json:"recommendations"`
}

// AdditionalSkill is a source skill the target does not ask for.
type AdditionalSkill struct {
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
}

// DetailedReport keeps per-skill confidences and categories.
type DetailedReport struct {
	Matched           map[string]MatchedSkill    `json:"matched_skills"`
	Missing           map[string]MissingSkill    `json:"missing_skills"`
	Additional        map[string]AdditionalSkill `json:"additional_skills"`
	MatchPercentage   float64                    `json:"match_percentage"`
	TotalTargetSkills int                        `json:"total_job_skills"`
	TotalSourceSkills int                        `json:"total_resume_skills"`
	Strategy          matching.Strategy          `json:"strategy"`
}

// CategoryReport groups the skills of a report by vocabulary category.
type CategoryReport map[string]map[string][]string

// ReportByCategory groups matched, missing and additional skills by the
// category they belong to.
func (r *Report) ReportByCategory(store *vocabulary.Store) CategoryReport {
	report := make(CategoryReport)
	add := func(kind string, skills []string) {
		for _, skill := range skills {
			category := store.CategoryOf(skill)
			if report[category] == nil {
				report[category] = make(map[string][]string)
			}
			report[category][kind] = append(report[category][kind], skill)
		}
	}

	add("matched", r.Matched)
	add("missing", r.Missing)
	add("additional", r.Additional)

	return report
}

// DumpToTmpFile writes the report as indented JSON into a new temporary file
// and returns its name.
func (r *Report) DumpToTmpFile() (string, error) {
	return dumpToTmpFile(r)
}

// DumpToTmpFile writes the report as indented JSON into a new temporary file
// and returns its name.
func (r *DetailedReport) DumpToTmpFile() (string, error) {
	return dumpToTmpFile(r)
}

func dumpToTmpFile(v any) (string, error) {
	file, err := os.CreateTemp("", "skill_gap_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// percentage is matched/target as a percentage rounded to two decimals,
// or zero for an empty target.
func percentage(matched, target int) float64 {
	if target == 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(target)*100*100) / 100
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
