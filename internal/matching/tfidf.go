package matching

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/spigell/skill-gap/internal/utils"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9+#./-]+`)

const maxNgram = 3

// sparseVector maps feature index to weight.
type sparseVector map[int]float64

func (v sparseVector) dot(other sparseVector) float64 {
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for idx, w := range v {
		sum += w * other[idx]
	}
	return sum
}

// termSpace is a tf-idf vector space fitted once over a small corpus.
type termSpace struct {
	features map[string]int
	idf      []float64
	docs     []sparseVector
}

// fitTermSpace fits smoothed idf weights over corpus. The vocabulary keeps
// the maxFeatures most frequent terms, ties broken alphabetically.
func fitTermSpace(corpus []string, maxFeatures int) *termSpace {
	docTerms := make([]map[string]int, len(corpus))
	frequency := make(map[string]int)
	docFrequency := make(map[string]int)

	for i, doc := range corpus {
		counts := termCounts(doc)
		docTerms[i] = counts
		for term, n := range counts {
			frequency[term] += n
			docFrequency[term]++
		}
	}

	terms := make([]string, 0, len(frequency))
	for term := range frequency {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if frequency[terms[i]] != frequency[terms[j]] {
			return frequency[terms[i]] > frequency[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	space := &termSpace{
		features: make(map[string]int, len(terms)),
		idf:      make([]float64, len(terms)),
		docs:     make([]sparseVector, len(corpus)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		space.features[term] = i
		space.idf[i] = math.Log((1+n)/(1+float64(docFrequency[term]))) + 1
	}

	for i, counts := range docTerms {
		space.docs[i] = space.weigh(counts)
	}
	return space
}

// transform vectorizes text in the fitted space.
func (s *termSpace) transform(text string) sparseVector {
	return s.weigh(termCounts(text))
}

func (s *termSpace) weigh(counts map[string]int) sparseVector {
	vec := make(sparseVector, len(counts))
	var norm float64
	for term, n := range counts {
		idx, ok := s.features[term]
		if !ok {
			continue
		}
		w := float64(n) * s.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// termCounts counts the 1..3-grams of text after stop word removal.
func termCounts(text string) map[string]int {
	tokens := tokenize(text)
	counts := make(map[string]int)
	for size := 1; size <= maxNgram; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+size], " ")]++
		}
	}
	return counts
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(utils.NormalizeText(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimRight(token, ".")
		if token == "" || utils.IsStopWord(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
