package ai

import "context"

// Embedder turns texts into dense vectors. The result has one vector per
// input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// PhraseExtractor segments text into noun phrases.
type PhraseExtractor interface {
	NounPhrases(ctx context.Context, text string) ([]string, error)
}

// Named is implemented by models that can describe themselves in logs.
type Named interface {
	Model() string
}

// ModelName returns the model name of m, or an empty string.
func ModelName(m any) string {
	if named, ok := m.(Named); ok {
		return named.Model()
	}
	return ""
}
