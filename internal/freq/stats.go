package freq

import (
	"sort"
	"unicode/utf8"
)

// maxLongest caps how many of the longest words Summarize reports.
const maxLongest = 10

// Milestones are the rank cutoffs reported as coverage lines.
var Milestones = []int{1, 10, 100, 1000}

// Stats holds descriptive statistics that accompany the ranked table.
type Stats struct {
	VocabularyRichness float64
	AvgWordLength      float64
	Longest            []string
}

// Summarize computes statistics over the token stream and its ranking.
// Word length is measured in runes.
func Summarize(tokens []string, ranking []Entry) Stats {
	var s Stats
	if len(tokens) == 0 {
		return s
	}
	runes := 0
	for _, tok := range tokens {
		runes += utf8.RuneCountInString(tok)
	}
	s.AvgWordLength = float64(runes) / float64(len(tokens))
	s.VocabularyRichness = float64(len(ranking)) / float64(len(tokens))

	words := make([]string, 0, len(ranking))
	for _, e := range ranking {
		words = append(words, e.Word)
	}
	sort.Slice(words, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(words[i]), utf8.RuneCountInString(words[j])
		if li != lj {
			return li > lj
		}
		return words[i] < words[j]
	})
	if len(words) > maxLongest {
		words = words[:maxLongest]
	}
	s.Longest = words
	return s
}
