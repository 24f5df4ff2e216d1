package matching

import (
	"context"
	"errors"
	"sync"

	"github.com/spigell/skill-gap/internal/vocabulary"
)

func scenarioStore() *vocabulary.Store {
	return vocabulary.Build(vocabulary.Source{
		Categories: []vocabulary.Category{
			{Name: "programming_languages", Skills: []string{"python", "java", "javascript", "c++", "c#"}},
			{Name: "frontend", Skills: []string{"react"}},
			{Name: "cloud_devops", Skills: []string{"docker", "aws"}},
			{Name: "data_science_ml", Skills: []string{"machine learning"}},
		},
		Synonyms: []vocabulary.Synonym{
			{Skill: "react", Variants: []string{"react", "reactjs", "react.js"}},
			{Skill: "aws", Variants: []string{"aws", "amazon web services"}},
		},
	})
}

// keywordEmbedder gives every text a vector with one dimension per keyword,
// set when the keyword appears in the text as a whole word.
type keywordEmbedder struct {
	keywords []string
	err      error

	mu    sync.Mutex
	calls int
}

func newKeywordEmbedder(store *vocabulary.Store) *keywordEmbedder {
	return &keywordEmbedder{keywords: store.Skills()}
}

func (k *keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	k.mu.Lock()
	k.calls++
	k.mu.Unlock()

	if k.err != nil {
		return nil, k.err
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, len(k.keywords))
		for j, keyword := range k.keywords {
			if containsWord(text, keyword) {
				vector[j] = 1
			}
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (k *keywordEmbedder) Model() string {
	return "keyword-embedder"
}

// stubPhrases answers the startup check and fails afterwards when err is set.
type stubPhrases struct {
	phrases  []string
	err      error
	checkErr error

	mu    sync.Mutex
	calls int
}

func (s *stubPhrases) NounPhrases(_ context.Context, text string) ([]string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if text == checkText {
		return nil, s.checkErr
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.phrases, nil
}

var errRemote = errors.New("remote model unavailable")

func containsWord(text, word string) bool {
	return len(wordOccurrences(text, word)) > 0
}

func skillNames(matches []Match) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Skill)
	}
	return names
}

func findMatch(matches []Match, skill string) (Match, bool) {
	for _, m := range matches {
		if m.Skill == skill {
			return m, true
		}
	}
	return Match{}, false
}
