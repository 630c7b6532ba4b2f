// Package tokenize turns raw text into lowercase word tokens.
package tokenize

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenize lowercases text and returns its maximal runs of letters. Digits,
// punctuation, whitespace and every other non-letter rune separate words.
// Text is composed to NFC first so a letter followed by a combining accent
// stays one word. Combining marks with no precomposed form (the dot of a
// lowercased İ, Indic vowel signs) continue a run that a letter started; a
// mark with no letter before it is a separator.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lower := cases.Lower(language.Und).String(norm.NFC.String(text))
	var words []string
	start := -1
	for i, r := range lower {
		switch {
		case unicode.IsLetter(r):
			if start < 0 {
				start = i
			}
		case start >= 0 && unicode.Is(unicode.M, r):
			// mark continues the current word
		default:
			if start >= 0 {
				words = append(words, lower[start:i])
				start = -1
			}
		}
	}
	if start >= 0 {
		words = append(words, lower[start:])
	}
	return words
}
