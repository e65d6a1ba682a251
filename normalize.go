package chartparse

import (
	"regexp"
	"strings"
	"unicode"
)

// reNegation finds a word ending in the clitic n't ("don't", "can't").
var reNegation = regexp.MustCompile(`(?i)(\p{L})(n't)\b`)

// reToken matches a clitic ('s, 'll, n't ...), a run of letters, a run of
// digits, or one other symbol. Clitics come first so they stay whole.
var reToken = regexp.MustCompile(`(?i)n't|'(?:s|m|d|ll|re|ve)\b|[\p{L}\p{M}]+|\p{N}+|[^\s\p{L}\p{M}\p{N}]`)

// Tokenize splits sentence into words, lowercases them, and drops every
// token that is not made entirely of letters. Punctuation, numbers and
// clitics therefore never reach the parser: "don't" yields "do", and
// "Holmes's" yields "holmes".
func Tokenize(sentence string) []string {
	sentence = reNegation.ReplaceAllString(sentence, "${1} ${2}")
	var words []string
	for _, tok := range reToken.FindAllString(sentence, -1) {
		if !isAlpha(tok) {
			continue
		}
		words = append(words, strings.ToLower(tok))
	}
	return words
}

// isAlpha reports whether s is non-empty and holds only letters and
// combining marks.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) {
			return false
		}
	}
	return true
}
