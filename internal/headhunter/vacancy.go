package headhunter

import (
	"strings"

	"github.com/spigell/skill-gap/internal/documents"
)

type Vacancies struct {
	Items []*Vacancy
}

type Named struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Employer struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
}

type Snippet struct {
	Requirement    string `json:"requirement,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

type KeySkill struct {
	Name string `json:"name,omitempty"`
}

type Vacancy struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	Area         Named      `json:"area,omitempty"`
	Experience   Named      `json:"experience,omitempty"`
	Employer     Employer   `json:"employer,omitempty"`
	AlternateURL string     `json:"alternate_url,omitempty"`
	Description  string     `json:"description,omitempty"`
	KeySkills    []KeySkill `json:"key_skills,omitempty"`
	Archived     bool       `json:"archived,omitempty"`
	// Snippet is only filled in search results.
	Snippet     Snippet `json:"snippet,omitempty"`
	PublishedAt string  `json:"published_at,omitempty"`
}

// JobText is the text analyzed for a vacancy: its name, the description
// (or the search snippet when there is none) with markup removed, and the
// key skills one per line.
func (va *Vacancy) JobText() string {
	parts := []string{va.Name}

	description := va.Description
	if description == "" {
		description = strings.Join([]string{va.Snippet.Requirement, va.Snippet.Responsibility}, "\n")
	}
	if text, err := documents.HTMLText(description); err == nil {
		parts = append(parts, text)
	}

	for _, skill := range va.KeySkills {
		parts = append(parts, skill.Name)
	}

	return documents.CleanText(strings.Join(parts, "\n"))
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

func (v *Vacancies) FindByID(id string) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.ID == id {
			return vacancy
		}
	}
	return nil
}
