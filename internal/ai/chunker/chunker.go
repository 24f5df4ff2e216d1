// Package chunker is an offline noun-phrase segmenter. It splits text on
// punctuation, stop words and common resume verbs and returns the runs of
// words left in between.
package chunker

import (
	"context"
	"strings"

	"github.com/spigell/skill-gap/internal/utils"
)

// Name identifies the chunker in configuration and logs.
const Name = "builtin"

const defaultMaxWords = 4

var verbs = map[string]struct{}{
	"use": {}, "used": {}, "uses": {}, "using": {},
	"build": {}, "built": {}, "building": {}, "builds": {},
	"develop": {}, "developed": {}, "developing": {}, "develops": {},
	"design": {}, "designed": {}, "designing": {},
	"create": {}, "created": {}, "creating": {},
	"work": {}, "worked": {}, "working": {}, "works": {},
	"lead": {}, "led": {}, "leading": {},
	"manage": {}, "managed": {}, "managing": {},
	"implement": {}, "implemented": {}, "implementing": {},
	"maintain": {}, "maintained": {}, "maintaining": {},
	"write": {}, "wrote": {}, "written": {}, "writing": {},
	"deploy": {}, "deployed": {}, "deploying": {},
	"know": {}, "knows": {}, "knowing": {},
	"include": {}, "includes": {}, "including": {},
	"require": {}, "requires": {}, "required": {},
	"need": {}, "needs": {}, "needed": {},
	"looking": {}, "seeking": {}, "want": {}, "wanted": {},
	"improve": {}, "improved": {}, "migrate": {}, "migrated": {},
	"support": {}, "supported": {}, "collaborate": {}, "collaborated": {},
}

// Chunker implements ai.PhraseExtractor without any remote model.
type Chunker struct {
	maxWords int
}

// New returns a Chunker. Phrases longer than maxWords are cut into pieces;
// a non-positive value keeps the default of four words.
func New(maxWords int) *Chunker {
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}
	return &Chunker{maxWords: maxWords}
}

// NounPhrases returns the distinct phrases of text in discovery order.
func (c *Chunker) NounPhrases(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		phrases []string
		seen    = make(map[string]struct{})
		current []string
	)

	flush := func() {
		for start := 0; start < len(current); start += c.maxWords {
			end := min(start+c.maxWords, len(current))
			phrase := strings.Join(current[start:end], " ")
			if _, ok := seen[phrase]; !ok {
				seen[phrase] = struct{}{}
				phrases = append(phrases, phrase)
			}
		}
		current = current[:0]
	}

	for _, field := range strings.Fields(strings.ToLower(text)) {
		word, before, after := trimWord(field)
		if before {
			flush()
		}
		if word == "" || boundary(word) {
			flush()
			continue
		}
		current = append(current, word)
		if after {
			flush()
		}
	}
	flush()

	return phrases, nil
}

// Model returns the chunker name.
func (c *Chunker) Model() string {
	return Name
}

func boundary(word string) bool {
	if utils.IsStopWord(word) {
		return true
	}
	_, ok := verbs[word]
	return ok
}

// trimWord strips punctuation around a whitespace-separated field and
// reports whether a phrase boundary sits before or after it.
func trimWord(field string) (word string, before, after bool) {
	word = strings.TrimLeft(field, `([{"'<`)
	before = len(word) != len(field)

	trimmed := strings.TrimRight(word, `.,;:!?)]}"'>`)
	after = len(trimmed) != len(word)
	word = trimmed

	if !strings.ContainsAny(word, "abcdefghijklmnopqrstuvwxyz0123456789") {
		return "", true, true
	}
	return word, before, after
}
