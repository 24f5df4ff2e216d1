package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/skill-gap/internal/documents"
	"github.com/spigell/skill-gap/internal/headhunter"
	"github.com/spigell/skill-gap/internal/secrets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// readText returns inline text or the text of a file, whichever is set.
func readText(inline, path, name string) (string, error) {
	inline = strings.TrimSpace(inline)
	path = strings.TrimSpace(path)

	switch {
	case inline != "" && path != "":
		return "", fmt.Errorf("%s: text and file are mutually exclusive", name)
	case inline != "":
		return inline, nil
	case path != "":
		return documents.ReadText(path)
	default:
		return "", fmt.Errorf("%s is required", name)
	}
}

// resumeText reads the resume from --resume-text, --resume-file or an
// hh.ru resume picked by id or by title.
func (s *session) resumeText(ctx context.Context, cmd *cobra.Command) (string, error) {
	id := flagString(cmd, "hh-resume-id")
	if title := flagString(cmd, "hh-resume-title"); title != "" && id == "" {
		hh, err := s.headhunter(ctx, true)
		if err != nil {
			return "", err
		}
		mine, err := hh.GetMineResumes()
		if err != nil {
			return "", err
		}
		resume := mine.FindByTitle(title)
		if resume == nil {
			return "", fmt.Errorf("resume %q not found, available: %s", title, strings.Join(mine.Titles(), ", "))
		}
		id = resume.ID
	}

	if id != "" {
		hh, err := s.headhunter(ctx, true)
		if err != nil {
			return "", err
		}
		resume, err := hh.GetResume(id)
		if err != nil {
			return "", err
		}
		s.logger.Info("resume fetched from hh.ru", zap.String("resume_id", id), zap.String("title", resume.Title))
		return resume.Text(), nil
	}

	return readText(flagString(cmd, "resume-text"), flagString(cmd, "resume-file"), "resume")
}

// jobText reads the job description from --job-text, --job-file or an
// hh.ru vacancy id.
func (s *session) jobText(ctx context.Context, cmd *cobra.Command) (string, error) {
	if id := flagString(cmd, "vacancy-id"); id != "" {
		hh, err := s.headhunter(ctx, false)
		if err != nil {
			return "", err
		}
		vacancy, err := hh.GetVacancy(id)
		if err != nil {
			return "", err
		}
		s.logger.Info("vacancy fetched from hh.ru",
			zap.String("vacancy_id", id),
			zap.String("name", vacancy.Name),
			zap.String("employer", vacancy.Employer.Name),
		)
		return vacancy.JobText(), nil
	}

	return readText(flagString(cmd, "job-text"), flagString(cmd, "job-file"), "job description")
}

// headhunter returns an hh.ru client. The token is optional unless
// requireToken is set.
func (s *session) headhunter(ctx context.Context, requireToken bool) (*headhunter.Client, error) {
	source := secrets.Source{
		Name: "headhunter token",
		File: s.config.Headhunter.TokenFile,
	}

	var (
		token string
		err   error
	)
	if requireToken {
		token, err = secrets.Load(source)
	} else {
		token, err = secrets.Optional(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (set HH_TOKEN_FILE environment variable or headhunter.token-file)", err)
	}

	hh := headhunter.New(ctx, s.logger, token)
	if s.config.Headhunter.UserAgent != "" {
		hh.UserAgent = s.config.Headhunter.UserAgent
	}
	return hh, nil
}

func flagString(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(flag.Value.String())
}

func flagBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	return err == nil && value
}

func addResumeFlags(cmd *cobra.Command) {
	cmd.Flags().String("resume-text", "", "resume text")
	cmd.Flags().String("resume-file", "", "resume file (.txt, .md, .html, .pdf or .docx)")
	cmd.Flags().String("hh-resume-id", "", "hh.ru resume id, requires a headhunter token")
	cmd.Flags().String("hh-resume-title", "", "title of one of your hh.ru resumes, requires a headhunter token")
}

// printJSON writes v as indented JSON to the command output.
func printJSON(cmd *cobra.Command, v any) error {
	return printJSONTo(cmd.OutOrStdout(), v)
}

func printJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var errExit = errors.New("exit requested")
