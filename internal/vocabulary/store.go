package vocabulary

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spigell/skill-gap/internal/utils"
)

// Uncategorized is reported for skills outside every declared category.
const Uncategorized = "uncategorized"

// Category groups canonical skills. Skill order is significant.
type Category struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Synonym lists the surface variants of a canonical skill.
type Synonym struct {
	Skill    string   `yaml:"skill" json:"skill"`
	Variants []string `yaml:"variants" json:"variants"`
}

// Recommendation holds learning resources for a skill.
type Recommendation struct {
	Courses       []string `yaml:"courses" json:"courses"`
	Difficulty    string   `yaml:"difficulty" json:"difficulty"`
	TimeEstimate  string   `yaml:"time_estimate" json:"time_estimate"`
	RelatedSkills []string `yaml:"-" json:"related_skills,omitempty"`
}

// Source is the raw vocabulary as declared in a vocabulary file.
type Source struct {
	Categories      []Category                `yaml:"categories"`
	Synonyms        []Synonym                 `yaml:"synonyms"`
	Recommendations map[string]Recommendation `yaml:"recommendations"`
}

// Store is the read-only skill vocabulary. It is safe for concurrent use.
type Store struct {
	skills          []string
	categoryOf      map[string]string
	categories      []string
	byCategory      map[string][]string
	synonyms        map[string][]string
	variantTo       map[string]string
	variants        []string
	recommendations map[string]Recommendation
}

// Build flattens src into a Store.
//
// Conflicts resolve to the first declaration: a skill listed under several
// categories keeps the first category, and a variant claimed by several
// skills resolves to the first one. A canonical skill always resolves to
// itself. Skills that only appear in the synonym table are canonical skills
// of the Uncategorized category.
func Build(src Source) *Store {
	s := &Store{
		categoryOf:      make(map[string]string),
		byCategory:      make(map[string][]string),
		synonyms:        make(map[string][]string),
		variantTo:       make(map[string]string),
		recommendations: make(map[string]Recommendation),
	}

	for _, category := range src.Categories {
		name := clean(category.Name)
		if name == "" {
			continue
		}
		for _, skill := range category.Skills {
			s.add(clean(skill), name)
		}
	}

	for _, syn := range src.Synonyms {
		s.add(clean(syn.Skill), Uncategorized)
	}

	for _, category := range src.Categories {
		name := clean(category.Name)
		if len(s.byCategory[name]) > 0 && !slices.Contains(s.categories, name) {
			s.categories = append(s.categories, name)
		}
	}
	if len(s.byCategory[Uncategorized]) > 0 && !slices.Contains(s.categories, Uncategorized) {
		s.categories = append(s.categories, Uncategorized)
	}

	for _, skill := range s.skills {
		if variant := utils.NormalizeText(skill); variant != "" {
			if _, taken := s.variantTo[variant]; !taken {
				s.variantTo[variant] = skill
			}
		}
	}
	for _, syn := range src.Synonyms {
		skill := clean(syn.Skill)
		if skill == "" {
			continue
		}
		for _, variant := range syn.Variants {
			variant = utils.NormalizeText(variant)
			if variant == "" {
				continue
			}
			if !slices.Contains(s.synonyms[skill], variant) {
				s.synonyms[skill] = append(s.synonyms[skill], variant)
			}
			if _, taken := s.variantTo[variant]; !taken {
				s.variantTo[variant] = skill
			}
		}
	}

	s.variants = make([]string, 0, len(s.variantTo))
	for variant := range s.variantTo {
		s.variants = append(s.variants, variant)
	}
	sort.Slice(s.variants, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(s.variants[i]), utf8.RuneCountInString(s.variants[j])
		if li != lj {
			return li > lj
		}
		return s.variants[i] < s.variants[j]
	})

	for skill, rec := range src.Recommendations {
		skill = clean(skill)
		if skill == "" {
			continue
		}
		rec.RelatedSkills = nil
		s.recommendations[skill] = rec
	}

	return s
}

func (s *Store) add(skill, category string) {
	if skill == "" {
		return
	}
	if _, ok := s.categoryOf[skill]; ok {
		return
	}
	s.skills = append(s.skills, skill)
	s.categoryOf[skill] = category
	s.byCategory[category] = append(s.byCategory[category], skill)
}

// Empty reports whether the vocabulary has no skills.
func (s *Store) Empty() bool {
	return len(s.skills) == 0
}

// Skills returns canonical skills in vocabulary order.
func (s *Store) Skills() []string {
	return append([]string(nil), s.skills...)
}

// Contains reports whether skill is a canonical skill.
func (s *Store) Contains(skill string) bool {
	_, ok := s.categoryOf[clean(skill)]
	return ok
}

// CategoryOf returns the category of skill or Uncategorized.
func (s *Store) CategoryOf(skill string) string {
	if category, ok := s.categoryOf[clean(skill)]; ok {
		return category
	}
	return Uncategorized
}

// Categories returns categories in declaration order. Uncategorized is last
// and only present when it holds skills.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// SkillsIn returns the skills of a category in vocabulary order.
func (s *Store) SkillsIn(category string) []string {
	return append([]string(nil), s.byCategory[clean(category)]...)
}

// Synonyms returns the declared variants of skill.
func (s *Store) Synonyms(skill string) []string {
	return append([]string(nil), s.synonyms[clean(skill)]...)
}

// Variants returns every known variant, longest first. Variants are stored
// normalized so they compare equal to normalized text.
func (s *Store) Variants() []string {
	return append([]string(nil), s.variants...)
}

// Resolve maps a surface variant to its canonical skill.
func (s *Store) Resolve(variant string) (string, bool) {
	skill, ok := s.variantTo[utils.NormalizeText(variant)]
	return skill, ok
}

// RelatedSkills returns up to limit skills sharing the category of skill,
// in vocabulary order. Uncategorized skills have no relatives.
func (s *Store) RelatedSkills(skill string, limit int) []string {
	skill = clean(skill)
	category := s.CategoryOf(skill)
	if category == Uncategorized || limit <= 0 {
		return nil
	}

	related := make([]string, 0, limit)
	for _, candidate := range s.byCategory[category] {
		if candidate == skill {
			continue
		}
		related = append(related, candidate)
		if len(related) >= limit {
			break
		}
	}
	return related
}

// Find looks up a canonical skill by exact name or variant, falling back to
// the first skill that contains term or is contained in it.
func (s *Store) Find(term string) (string, bool) {
	term = clean(term)
	if term == "" {
		return "", false
	}
	if skill, ok := s.variantTo[utils.NormalizeText(term)]; ok {
		return skill, true
	}
	for _, skill := range s.skills {
		if strings.Contains(skill, term) || strings.Contains(term, skill) {
			return skill, true
		}
	}
	return "", false
}

// Listing is a filtered view of the vocabulary grouped by category.
type Listing struct {
	Total      int                 `json:"total" yaml:"total"`
	Categories []string            `json:"categories" yaml:"categories"`
	Skills     map[string][]string `json:"skills" yaml:"skills"`
}

// List filters skills by category and by a case-insensitive search term.
// Empty filters match everything.
func (s *Store) List(category, search string) Listing {
	category = clean(category)
	search = clean(search)

	listing := Listing{Skills: make(map[string][]string)}
	for _, skill := range s.skills {
		cat := s.categoryOf[skill]
		if category != "" && cat != category {
			continue
		}
		if search != "" && !strings.Contains(skill, search) {
			continue
		}
		if _, ok := listing.Skills[cat]; !ok {
			listing.Categories = append(listing.Categories, cat)
		}
		listing.Skills[cat] = append(listing.Skills[cat], skill)
		listing.Total++
	}
	return listing
}

func clean(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
