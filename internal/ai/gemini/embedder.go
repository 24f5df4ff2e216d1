package gemini

import (
	"context"
	"fmt"

	"github.com/spigell/skill-gap/internal/logger"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 100

	taskSemanticSimilarity = "SEMANTIC_SIMILARITY"
)

type embedGenerator interface {
	Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error)
	EmbeddingModel() string
}

// Embedder implements ai.Embedder on top of a Generator.
type Embedder struct {
	generator embedGenerator
	batchSize int
	logger    *zap.Logger
}

// NewEmbedder returns an Embedder sending at most batchSize texts per request.
func NewEmbedder(generator embedGenerator, batchSize int, log *zap.Logger) *Embedder {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Embedder{
		generator: generator,
		batchSize: batchSize,
		logger:    logger.WithModelFields(log, "gemini", generator.EmbeddingModel(), "embedding"),
	}
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))

		e.logger.Debug("embedding batch",
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("total", len(texts)),
		)

		batch, err := e.generator.Embed(ctx, texts[start:end], taskSemanticSimilarity)
		if err != nil {
			return nil, fmt.Errorf("embedding texts %d-%d: %w", start, end, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.generator.EmbeddingModel()
}
