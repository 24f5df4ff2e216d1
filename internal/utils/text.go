package utils

import (
	"regexp"
	"strings"
)

var (
	// Symbols kept here are meaningful in technology names: c++, c#, node.js, ci/cd, t-sql.
	disallowedChars = regexp.MustCompile(`[^a-z0-9+.#/\-\s]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases text, replaces characters that never appear in
// skill names with spaces and collapses whitespace. The result is a fixed
// point: NormalizeText(NormalizeText(s)) == NormalizeText(s).
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = disallowedChars.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// CollapseWhitespace joins all whitespace-separated fields of text with a single space.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
