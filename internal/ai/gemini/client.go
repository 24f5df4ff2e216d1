package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/skill-gap/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultEmbeddingModel = "text-embedding-004"

	defaultMaxRetries = 3
	baseRetryDelay    = time.Second
	// Quota errors asking to wait longer than this are not retried.
	maxQuotaDelay = 10 * time.Second

	defaultMaxLogLength = 200
)

var wait = utils.WaitFor

// modelsAPI is the part of genai.Models used here.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Generator wraps the Google GenAI client with retries on temporary errors.
type Generator struct {
	models         modelsAPI
	model          string
	embeddingModel string
	maxRetries     int
	logger         *zap.Logger
}

// Options configure a Generator.
type Options struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	MaxRetries     int
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, opts Options, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, opts, logger), nil
}

func newGenerator(models modelsAPI, opts Options, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	embeddingModel := strings.TrimSpace(opts.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}

	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	return &Generator{
		models:         models,
		model:          model,
		embeddingModel: embeddingModel,
		maxRetries:     retries,
		logger:         logger,
	}
}

// GenerateContent sends message with a system instruction and returns the
// textual response. The model is asked for JSON output.
func (g *Generator) GenerateContent(ctx context.Context, system, message string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
	}
	if system = strings.TrimSpace(system); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	var resp *genai.GenerateContentResponse
	err := g.withRetries(ctx, "generate content", func() error {
		var err error
		resp, err = g.models.GenerateContent(ctx, g.model, genai.Text(message), cfg)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	output := strings.TrimSpace(responseText(resp))
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// Embed returns one embedding per text using the embedding model.
func (g *Generator) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if g == nil || g.models == nil {
		return nil, errors.New("gemini generator is not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	var cfg *genai.EmbedContentConfig
	if taskType != "" {
		cfg = &genai.EmbedContentConfig{TaskType: taskType}
	}

	var resp *genai.EmbedContentResponse
	err := g.withRetries(ctx, "embed content", func() error {
		var err error
		resp, err = g.models.EmbedContent(ctx, g.embeddingModel, contents, cfg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", got, len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding at index %d", i)
		}
		vectors[i] = embedding.Values
	}
	return vectors, nil
}

func (g *Generator) withRetries(ctx context.Context, op string, call func() error) error {
	var err error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		err = call()
		if err == nil {
			return nil
		}

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == g.maxRetries {
			return err
		}

		g.logger.Warn("temporary gemini error, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if waitErr := wait(ctx, delay); waitErr != nil {
			return waitErr
		}
	}
	return err
}

var retryAfterPattern = regexp.MustCompile(`retry (?:after|in) ([0-9.]+)\s*(s|sec|seconds?)\b`)

// retryDelay decides whether err is temporary and how long to wait.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	backoff := baseRetryDelay * time.Duration(attempt)

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		delay, ok := quotaDelay(apiErr)
		if !ok {
			return backoff, true
		}
		if delay > maxQuotaDelay {
			return 0, false
		}
		return delay, true
	case apiErr.Code >= http.StatusInternalServerError:
		return backoff, true
	default:
		return 0, false
	}
}

func quotaDelay(apiErr genai.APIError) (time.Duration, bool) {
	for _, detail := range apiErr.Details {
		raw, ok := detail["retryDelay"].(string)
		if !ok {
			continue
		}
		if d, err := time.ParseDuration(raw); err == nil {
			return d, true
		}
	}

	match := retryAfterPattern.FindStringSubmatch(strings.ToLower(apiErr.Message))
	if match == nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return builder.String()
}

// Model returns the generative model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// EmbeddingModel returns the embedding model name.
func (g *Generator) EmbeddingModel() string {
	if g == nil {
		return ""
	}
	return g.embeddingModel
}

// preview shortens payloads for debug logs.
func preview(s string) string {
	return utils.TruncateForLog(s, defaultMaxLogLength)
}
