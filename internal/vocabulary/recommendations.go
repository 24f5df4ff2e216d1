package vocabulary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// DifficultyVaries marks recommendations without curated resources.
	DifficultyVaries = "varies"
	// DefaultTimeEstimate is used when no curated estimate exists.
	DefaultTimeEstimate = "1-3 months"

	relatedPerRecommendation = 3
)

// ErrNoSkills is returned when a learning path is requested for nothing.
var ErrNoSkills = errors.New("no skills provided")

// Recommendation returns learning resources for skill with up to three
// related skills attached. Skills without curated resources get a generic
// recommendation.
func (s *Store) Recommendation(skill string) Recommendation {
	skill = clean(skill)

	rec, ok := s.recommendations[skill]
	switch {
	case ok:
		rec.Courses = append([]string(nil), rec.Courses...)
	case s.Contains(skill):
		rec = Recommendation{
			Courses: []string{
				fmt.Sprintf("Search for '%s' on Coursera", skill),
				fmt.Sprintf("Search for '%s' on Udemy", skill),
				fmt.Sprintf("Official %s documentation", skill),
			},
			Difficulty:   DifficultyVaries,
			TimeEstimate: DefaultTimeEstimate,
		}
	default:
		rec = Recommendation{
			Courses: []string{
				fmt.Sprintf("Search for '%s' tutorials online", skill),
				fmt.Sprintf("Check official %s documentation", skill),
				"Look for courses on Coursera, Udemy, or YouTube",
			},
			Difficulty:   DifficultyVaries,
			TimeEstimate: DefaultTimeEstimate,
		}
	}

	if related := s.RelatedSkills(skill, relatedPerRecommendation); len(related) > 0 {
		rec.RelatedSkills = related
	}
	return rec
}

// RecommendationsFor returns a recommendation per distinct skill.
func (s *Store) RecommendationsFor(skills []string) map[string]Recommendation {
	result := make(map[string]Recommendation, len(skills))
	for _, skill := range skills {
		key := clean(skill)
		if key == "" {
			continue
		}
		if _, ok := result[key]; ok {
			continue
		}
		result[key] = s.Recommendation(key)
	}
	return result
}

// Curated reports how many skills carry curated recommendations.
func (s *Store) Curated() int {
	return len(s.recommendations)
}

// LearningStep is one skill of a learning path.
type LearningStep struct {
	Skill         string   `json:"skill" yaml:"skill"`
	Category      string   `json:"category" yaml:"category"`
	Difficulty    string   `json:"difficulty" yaml:"difficulty"`
	EstimatedTime string   `json:"estimated_time" yaml:"estimated_time"`
	Resources     []string `json:"resources" yaml:"resources"`
	RelatedSkills []string `json:"related_skills" yaml:"related_skills"`
	Priority      string   `json:"priority" yaml:"priority"`
}

// LearningPath is an ordered study plan for a list of skills.
type LearningPath struct {
	TotalSkills          int            `json:"total_skills" yaml:"total_skills"`
	EstimatedTotalMonths float64        `json:"estimated_total_months" yaml:"estimated_total_months"`
	TimeAvailable        string         `json:"time_available" yaml:"time_available"`
	CurrentLevel         string         `json:"current_level" yaml:"current_level"`
	Steps                []LearningStep `json:"learning_path" yaml:"learning_path"`
	Advice               string         `json:"recommendation" yaml:"recommendation"`
}

const learningAdvice = "Focus on high-priority skills first and learn related skills together for better retention."

// LearningPath builds a study plan. Unknown skills are skipped. The first
// three requested skills get high priority. Steps are ordered by category,
// then difficulty.
func (s *Store) LearningPath(skills []string, currentLevel, timeAvailable string) (LearningPath, error) {
	if len(skills) == 0 {
		return LearningPath{}, ErrNoSkills
	}

	currentLevel = clean(currentLevel)
	path := LearningPath{
		TimeAvailable: timeAvailable,
		CurrentLevel:  currentLevel,
		Steps:         make([]LearningStep, 0, len(skills)),
		Advice:        learningAdvice,
	}

	for i, requested := range skills {
		skill := clean(requested)
		if !s.Contains(skill) {
			continue
		}

		rec := s.Recommendation(skill)
		path.EstimatedTotalMonths += adjustMonths(estimateMonths(rec.TimeEstimate), currentLevel, rec.Difficulty)

		priority := "medium"
		if i < 3 {
			priority = "high"
		}

		path.Steps = append(path.Steps, LearningStep{
			Skill:         skill,
			Category:      s.CategoryOf(skill),
			Difficulty:    rec.Difficulty,
			EstimatedTime: rec.TimeEstimate,
			Resources:     rec.Courses,
			RelatedSkills: s.RelatedSkills(skill, relatedPerRecommendation),
			Priority:      priority,
		})
	}

	sort.SliceStable(path.Steps, func(i, j int) bool {
		a, b := path.Steps[i], path.Steps[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Difficulty < b.Difficulty
	})

	path.TotalSkills = len(path.Steps)
	return path, nil
}

// estimateMonths turns a "N-M months" estimate into a single number.
func estimateMonths(estimate string) float64 {
	if !strings.Contains(estimate, "month") {
		return 0
	}
	switch {
	case strings.Contains(estimate, "1-2"):
		return 1.5
	case strings.Contains(estimate, "2-3"):
		return 2.5
	case strings.Contains(estimate, "3-4"):
		return 3.5
	case strings.Contains(estimate, "4-6"):
		return 5
	case strings.Contains(estimate, "3-6"):
		return 4.5
	default:
		return 3
	}
}

func adjustMonths(months float64, level, difficulty string) float64 {
	switch {
	case level == "intermediate" && difficulty == "beginner":
		return months * 0.5
	case level == "advanced":
		return months * 0.3
	case level == "beginner" && difficulty == "advanced":
		return months * 1.5
	default:
		return months
	}
}
