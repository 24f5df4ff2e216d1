// Package headhunter reads vacancies and resumes from the hh.ru API.
package headhunter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL      = "https://api.hh.ru"
	mineResumID = "mine"
	userAgent   = "spigell/skill-gap (spigelly@gmail.com)"
	// Max value for search per page.
	perPage = "100"
)

// ErrTokenRequired is returned for endpoints that need an OAuth token.
var ErrTokenRequired = errors.New("headhunter token is required")

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client. Public vacancies are readable without a token.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) Search(params *SearchParams) (*Vacancies, error) {
	return c.search(params)
}

// GetVacancy returns the full vacancy with its description and key skills.
func (c *Client) GetVacancy(id string) (*Vacancy, error) {
	if id == "" {
		return nil, errors.New("vacancy id is required")
	}

	vacancy := &Vacancy{}
	if err := c.getDecoded(fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id), vacancy); err != nil {
		return nil, fmt.Errorf("getting vacancy %s: %w", id, err)
	}
	return vacancy, nil
}

func (c *Client) GetMineResumes() (*Resumes, error) {
	if c.token == "" {
		return nil, ErrTokenRequired
	}
	return c.getResumes(mineResumID)
}

// GetResume returns a resume of the token owner with its skills and experience.
func (c *Client) GetResume(id string) (*Resume, error) {
	if c.token == "" {
		return nil, ErrTokenRequired
	}
	if id == "" {
		return nil, errors.New("resume id is required")
	}

	resume := &Resume{}
	if err := c.getDecoded(fmt.Sprintf("%s/resumes/%s", c.APIURL, id), resume); err != nil {
		return nil, fmt.Errorf("getting resume %s: %w", id, err)
	}
	return resume, nil
}
