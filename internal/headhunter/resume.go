package headhunter

import (
	"fmt"
	"strings"

	"github.com/spigell/skill-gap/internal/documents"
)

type Resumes struct {
	Items []*Resume
}

type Experience struct {
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Description string `json:"description,omitempty"`
}

type Resume struct {
	ID         string       `json:"id,omitempty"`
	Title      string       `json:"title,omitempty"`
	Skills     string       `json:"skills,omitempty"`
	SkillSet   []string     `json:"skill_set,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
}

func (c *Client) getResumes(id string) (*Resumes, error) {
	apiURLMineResumes := fmt.Sprintf("%s/resumes/%s", c.APIURL, id)

	items, err := c.GetItems(apiURLMineResumes, nil)
	if err != nil {
		return nil, err
	}

	var resumes []*Resume
	if err = decode(items, &resumes); err != nil {
		return nil, err
	}

	return &Resumes{
		Items: resumes,
	}, nil
}

func (r *Resumes) Len() int {
	return len(r.Items)
}

func (r *Resumes) Titles() []string {
	titles := make([]string, 0, len(r.Items))

	for _, v := range r.Items {
		titles = append(titles, v.Title)
	}

	return titles
}

func (r *Resumes) FindByTitle(title string) *Resume {
	for _, resume := range r.Items {
		if resume.Title == title {
			return resume
		}
	}

	return nil
}

// Text is the text analyzed for a resume: title, the about section, the
// skill set and every position with its description.
func (r *Resume) Text() string {
	parts := []string{r.Title, r.Skills, strings.Join(r.SkillSet, ", ")}
	for _, exp := range r.Experience {
		parts = append(parts, exp.Position)
		if text, err := documents.HTMLText(exp.Description); err == nil {
			parts = append(parts, text)
		}
	}
	return documents.CleanText(strings.Join(parts, "\n"))
}
