package tfidf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes is the shortest token kept.
const minTokenRunes = 2

// Tokenize splits text into normalised terms.
// Text is lowercased and split on every rune that is not a letter or digit.
// Tokens shorter than two runes and stop words are dropped.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		if IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// termCounts returns the raw frequency of each token.
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}
