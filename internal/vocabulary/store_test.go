package vocabulary

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() Source {
	return Source{
		Categories: []Category{
			{Name: "programming_languages", Skills: []string{"python", "java", "rust"}},
			{Name: "frontend", Skills: []string{"React", "javascript", "node"}},
			{Name: "backend", Skills: []string{"node.js", "django"}},
			{Name: "blockchain_web3", Skills: []string{"solidity", "rust"}},
		},
		Synonyms: []Synonym{
			{Skill: "react", Variants: []string{"react", "reactjs", "react.js"}},
			{Skill: "node.js", Variants: []string{"node.js", "nodejs", "node"}},
			{Skill: "javascript", Variants: []string{"js", "ecmascript"}},
			{Skill: "java", Variants: []string{"js", "jdk"}},
			{Skill: "git", Variants: []string{"git", "version control"}},
		},
		Recommendations: map[string]Recommendation{
			"python": {Courses: []string{"Python course"}, Difficulty: "beginner", TimeEstimate: "3-6 months"},
		},
	}
}

func TestBuildFirstDeclaredCategoryWins(t *testing.T) {
	store := Build(testSource())

	assert.Equal(t, "programming_languages", store.CategoryOf("rust"))
	assert.Equal(t, []string{"solidity"}, store.SkillsIn("blockchain_web3"))

	skills := store.Skills()
	count := 0
	for _, skill := range skills {
		if skill == "rust" {
			count++
		}
	}
	assert.Equal(t, 1, count, "canonical skills must be unique")
}

func TestBuildSynonymOnlySkillsAreUncategorized(t *testing.T) {
	store := Build(testSource())

	require.True(t, store.Contains("git"))
	assert.Equal(t, Uncategorized, store.CategoryOf("git"))
	assert.Equal(t, "git", store.Skills()[len(store.Skills())-1])
	assert.Equal(t, Uncategorized, store.Categories()[len(store.Categories())-1])
	assert.Empty(t, store.RelatedSkills("git", 5))
}

func TestResolve(t *testing.T) {
	store := Build(testSource())

	tests := []struct {
		variant string
		expect  string
	}{
		{variant: "ReactJS", expect: "react"},
		{variant: "react.js", expect: "react"},
		{variant: "nodejs", expect: "node.js"},
		// canonical names resolve to themselves even when claimed as a synonym.
		{variant: "node", expect: "node"},
		// first declared synonym wins a collision.
		{variant: "js", expect: "javascript"},
		{variant: "jdk", expect: "java"},
		{variant: "version control", expect: "git"},
	}

	for _, tt := range tests {
		got, ok := store.Resolve(tt.variant)
		require.True(t, ok, tt.variant)
		assert.Equal(t, tt.expect, got, tt.variant)
	}

	_, ok := store.Resolve("cobol")
	assert.False(t, ok)
}

func TestVariantsAreNormalized(t *testing.T) {
	store := Build(Source{
		Categories: []Category{
			{Name: "quality", Skills: []string{"qa"}},
			{Name: "devops", Skills: []string{"ci/cd"}},
		},
		Synonyms: []Synonym{
			{Skill: "qa", Variants: []string{"Q&A", "  Quality_Assurance "}},
			{Skill: "ci/cd", Variants: []string{"CI/CD!"}},
		},
	})

	assert.Equal(t, []string{"quality assurance", "ci/cd", "q a", "qa"}, store.Variants())
	assert.Equal(t, []string{"q a", "quality assurance", "ci/cd"}, append(store.Synonyms("qa"), store.Synonyms("ci/cd")...))

	for variant, expect := range map[string]string{
		"quality_assurance": "qa",
		"Q&A":               "qa",
		"ci/cd":             "ci/cd",
	} {
		got, ok := store.Resolve(variant)
		require.True(t, ok, variant)
		assert.Equal(t, expect, got, variant)
	}
}

func TestVariantsSortedLongestFirst(t *testing.T) {
	variants := Build(testSource()).Variants()
	require.NotEmpty(t, variants)

	for i := 1; i < len(variants); i++ {
		prev, cur := utf8.RuneCountInString(variants[i-1]), utf8.RuneCountInString(variants[i])
		require.GreaterOrEqual(t, prev, cur, "%q before %q", variants[i-1], variants[i])
		if prev == cur {
			require.Less(t, variants[i-1], variants[i])
		}
	}
	assert.Equal(t, "version control", variants[0])
}

func TestRelatedSkills(t *testing.T) {
	store := Build(testSource())

	assert.Equal(t, []string{"java", "rust"}, store.RelatedSkills("python", 5))
	assert.Equal(t, []string{"java"}, store.RelatedSkills("Python", 1))
	assert.Empty(t, store.RelatedSkills("python", 0))
	assert.Empty(t, store.RelatedSkills("unknown", 5))
}

func TestFind(t *testing.T) {
	store := Build(testSource())

	got, ok := store.Find("Django")
	require.True(t, ok)
	assert.Equal(t, "django", got)

	// variants resolve before substring containment
	got, ok = store.Find("ReactJS")
	require.True(t, ok)
	assert.Equal(t, "react", got)

	got, ok = store.Find("nodejs")
	require.True(t, ok)
	assert.Equal(t, "node.js", got)

	got, ok = store.Find("python3")
	require.True(t, ok)
	assert.Equal(t, "python", got)

	_, ok = store.Find("   ")
	assert.False(t, ok)

	_, ok = store.Find("haskell")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	store := Build(testSource())

	all := store.List("", "")
	assert.Equal(t, len(store.Skills()), all.Total)
	assert.Equal(t, store.Categories(), all.Categories)

	filtered := store.List("Frontend", "")
	assert.Equal(t, 3, filtered.Total)
	assert.Equal(t, []string{"frontend"}, filtered.Categories)

	searched := store.List("", "no")
	assert.Equal(t, []string{"frontend", "backend"}, searched.Categories)
	assert.Equal(t, []string{"node"}, searched.Skills["frontend"])
	assert.Equal(t, []string{"node.js"}, searched.Skills["backend"])
}

func TestEmptyVocabulary(t *testing.T) {
	store := Build(Source{})

	assert.True(t, store.Empty())
	assert.Empty(t, store.Skills())
	assert.Empty(t, store.Variants())
	assert.Empty(t, store.Categories())
	assert.Equal(t, Uncategorized, store.CategoryOf("python"))
}

func TestDefaultVocabulary(t *testing.T) {
	store, err := Default()
	require.NoError(t, err)

	categories := store.Categories()
	require.Len(t, categories, 13)
	assert.Equal(t, "programming_languages", categories[0])
	assert.Equal(t, "game_dev", categories[11])
	assert.Equal(t, Uncategorized, categories[12])

	assert.Equal(t, "programming_languages", store.CategoryOf("c++"))
	assert.Equal(t, "frontend", store.CategoryOf("graphql"))
	assert.Equal(t, Uncategorized, store.CategoryOf("kafka"))

	skill, ok := store.Resolve("k8s")
	require.True(t, ok)
	assert.Equal(t, "kubernetes", skill)

	skill, ok = store.Resolve(".net")
	require.True(t, ok)
	assert.Equal(t, "c#", skill)

	assert.Equal(t, 16, store.Curated())
}
