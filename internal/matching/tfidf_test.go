package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"c++", "node.js", "ci/cd", "t-sql"}, tokenize("The C++, node.js. CI/CD and T-SQL."))
	assert.Empty(t, tokenize(""))
}

func TestTermCountsNgrams(t *testing.T) {
	counts := termCounts("rest api gateway design")
	for _, term := range []string{"rest", "api", "gateway", "design", "rest api", "api gateway", "gateway design", "rest api gateway", "api gateway design"} {
		assert.Equal(t, 1, counts[term], term)
	}
	assert.NotContains(t, counts, "rest api gateway design")
}

func TestFitTermSpace(t *testing.T) {
	space := fitTermSpace([]string{"python", "python django", "go"}, 0)

	idx, ok := space.features["python"]
	require.True(t, ok)
	// smoothed idf: ln((1+3)/(1+2)) + 1
	assert.InDelta(t, math.Log(4.0/3.0)+1, space.idf[idx], 1e-12)

	for _, doc := range space.docs {
		var norm float64
		for _, w := range doc {
			norm += w * w
		}
		assert.InDelta(t, 1.0, norm, 1e-9)
	}

	query := space.transform("python")
	assert.InDelta(t, 1.0, query.dot(space.docs[0]), 1e-9)
	assert.Zero(t, query.dot(space.docs[2]))
}

func TestFitTermSpaceMaxFeatures(t *testing.T) {
	space := fitTermSpace([]string{"python", "python", "python go", "rust"}, 1)

	assert.Len(t, space.features, 1)
	assert.Contains(t, space.features, "python")
	assert.Empty(t, space.transform("rust"))
}
