package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/skill-gap/internal/logger"
	"go.uber.org/zap"
)

//go:embed prompt.md
var systemPrompt string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// PhraseExtractor implements ai.PhraseExtractor by prompting Gemini.
type PhraseExtractor struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewPhraseExtractor(generator contentGenerator, log *zap.Logger) *PhraseExtractor {
	return &PhraseExtractor{
		generator: generator,
		logger:    logger.WithModelFields(log, "gemini", generator.Model(), "phrases"),
	}
}

// NounPhrases asks the model for the noun phrases of text.
func (p *PhraseExtractor) NounPhrases(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	p.logger.Debug("gemini noun phrases request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", preview(text)),
	)

	raw, err := p.generator.GenerateContent(ctx, systemPrompt, "Text:\n"+text)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("gemini noun phrases response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", preview(raw)),
	)

	return parsePhrases(raw)
}

// Model returns the generative model name.
func (p *PhraseExtractor) Model() string {
	return p.generator.Model()
}

func parsePhrases(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var items []any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		var wrapped struct {
			Phrases []any `json:"phrases"`
		}
		if wrappedErr := json.Unmarshal([]byte(cleaned), &wrapped); wrappedErr != nil || wrapped.Phrases == nil {
			return nil, fmt.Errorf("parse gemini response: %w", err)
		}
		items = wrapped.Phrases
	}

	phrases := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		phrase, ok := item.(string)
		if !ok {
			continue
		}
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}
		phrases = append(phrases, phrase)
	}
	return phrases, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
