// Package intent guesses whether a search query is a lyrics fragment.
package intent

import (
	"strings"
	"unicode"
)

// DefaultThreshold is the word count from which a query counts as lyrics.
const DefaultThreshold = 5

// Words that mark a metadata query even when it is long.
var metadataKeywords = []string{"album", "artist", "song"}

// Result is the classification of a query.
type Result struct {
	IsLyrics  bool
	WordCount int
}

// Classify classifies query with the default threshold.
func Classify(query string) Result {
	return ClassifyWith(query, DefaultThreshold)
}

// ClassifyWith classifies query, treating it as lyrics when it has at
// least threshold words and mentions none of the metadata keywords.
func ClassifyWith(query string, threshold int) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	n := len(strings.Fields(stripPunct(query)))
	return Result{
		IsLyrics:  n >= threshold && !hasMetadataKeyword(query),
		WordCount: n,
	}
}

// stripPunct drops punctuation and symbol runes so "don't" counts as one word.
func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

func hasMetadataKeyword(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range metadataKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
