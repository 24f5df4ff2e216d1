package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/skill-gap/internal/ai/chunker"
	"github.com/spigell/skill-gap/internal/ai/gemini"
	"github.com/spigell/skill-gap/internal/logger"
	"github.com/spigell/skill-gap/internal/matching"
	"github.com/spigell/skill-gap/internal/secrets"
	"github.com/spigell/skill-gap/internal/vocabulary"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	providerNone    = "none"
	providerBuiltin = "builtin"
	providerGemini  = "gemini"
)

// session is what every command needs: configuration, a logger and the
// vocabulary.
type session struct {
	config *Config
	logger *zap.Logger
	store  *vocabulary.Store
}

func newSession() *session {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store, err := loadVocabulary(config.VocabularyFile)
	if err != nil {
		logger.Fatal("loading vocabulary", zap.Error(err), zap.String("file", config.VocabularyFile))
	}

	logger.Debug("vocabulary loaded",
		zap.Int("skills", len(store.Skills())),
		zap.Int("categories", len(store.Categories())),
	)

	return &session{config: config, logger: logger, store: store}
}

func loadVocabulary(path string) (*vocabulary.Store, error) {
	if strings.TrimSpace(path) == "" {
		return vocabulary.Default()
	}
	return vocabulary.Load(path)
}

// strategy returns the configured strategy or stops the command.
func (s *session) strategy() matching.Strategy {
	strategy, err := matching.ParseStrategy(s.config.Strategy)
	if err != nil {
		s.logger.Fatal("parsing strategy", zap.Error(err))
	}
	return strategy
}

// engine builds the matching engine. Without models.required a model that
// cannot be loaded only disables the strategies depending on it.
func (s *session) engine(ctx context.Context) *matching.Engine {
	engine, err := newEngine(ctx, s.store, s.config, s.logger)
	if err != nil {
		s.logger.Fatal("building matching engine", zap.Error(err))
	}
	return engine
}

func newEngine(ctx context.Context, store *vocabulary.Store, config *Config, logger *zap.Logger) (*matching.Engine, error) {
	models, err := buildModels(ctx, config.Models, logger)
	if err != nil {
		if config.Models.Required {
			return nil, fmt.Errorf("%w: %w", matching.ErrModelUnavailable, err)
		}
		logger.Warn("models are not available, running in reduced mode", zap.Error(err))
		models = fallbackModels(config.Models)
	}

	engine, err := matching.New(ctx, store, models, config.Matching, logger)
	if errors.Is(err, matching.ErrModelUnavailable) && !config.Models.Required {
		logger.Warn("models failed to load, running in reduced mode", zap.Error(err))
		engine, err = matching.New(ctx, store, fallbackModels(config.Models), config.Matching, logger)
	}
	if err != nil {
		return nil, err
	}

	return engine, nil
}

func buildModels(ctx context.Context, config ModelsConfig, log *zap.Logger) (matching.Models, error) {
	var models matching.Models

	embedder := provider(config.Embedder)
	phrases := provider(config.Phrases)

	switch embedder {
	case providerNone, providerGemini:
	default:
		return models, fmt.Errorf("unsupported embedding provider: %s", config.Embedder)
	}

	switch phrases {
	case providerNone:
	case providerBuiltin:
		models.Phrases = chunker.New(config.Chunk)
	case providerGemini:
	default:
		return models, fmt.Errorf("unsupported phrase provider: %s", config.Phrases)
	}

	if embedder != providerGemini && phrases != providerGemini {
		return models, nil
	}

	generator, err := newGenerator(ctx, config.Gemini, log)
	if err != nil {
		return models, err
	}

	if embedder == providerGemini {
		models.Embedder = gemini.NewEmbedder(generator, config.Gemini.BatchSize, log)
	}
	if phrases == providerGemini {
		models.Phrases = gemini.NewPhraseExtractor(generator, log)
	}

	return models, nil
}

// fallbackModels keeps only the offline chunker.
func fallbackModels(config ModelsConfig) matching.Models {
	if provider(config.Phrases) == providerNone {
		return matching.Models{}
	}
	return matching.Models{Phrases: chunker.New(config.Chunk)}
}

func newGenerator(ctx context.Context, config *GeminiConfig, log *zap.Logger) (*gemini.Generator, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.APIKey,
		File:  config.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set models.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithFields(log, zap.Int("ai_retry_attempts", config.MaxRetries))

	return gemini.NewGenerator(ctx, gemini.Options{
		APIKey:         apiKey,
		Model:          config.Model,
		EmbeddingModel: config.EmbeddingModel,
		MaxRetries:     config.MaxRetries,
	}, genLogger)
}

func provider(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return providerNone
	}
	return name
}
