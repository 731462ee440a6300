// File: internal/usecase/keywords.go
package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxKeywords             = 10
	DefaultMinKeywordLength = 3
)

// Closed list of common Portuguese functional words.
var stopwords = map[string]struct{}{
	"o": {}, "a": {}, "os": {}, "as": {}, "um": {}, "uma": {},
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {},
	"em": {}, "no": {}, "na": {}, "nos": {}, "nas": {},
	"por": {}, "para": {}, "com": {}, "sem": {},
	"e": {}, "ou": {}, "mas": {}, "que": {}, "se": {},
	"como": {}, "é": {}, "são": {}, "foi": {}, "ser": {},
}

// ExtractKeywords turns transcribed text into at most 10 search terms,
// preserving first-occurrence order. Punctuation acts as a separator and
// never merges adjacent words. Duplicates are kept on purpose: each one
// becomes its own match predicate downstream, which is wasteful but
// harmless, and deduplicating would change retrieval recall.
func ExtractKeywords(text string, minLength int) []string {
	if minLength <= 0 {
		minLength = DefaultMinKeywordLength
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) < minLength {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
