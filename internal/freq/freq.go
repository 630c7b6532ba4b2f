// Package freq counts word occurrences and selects the smallest set of most
// frequent words whose cumulative share of all occurrences reaches a target
// percentage.
package freq

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidPercentage is returned when the target percentage is not a finite
// number in [0, 100].
var ErrInvalidPercentage = errors.New("invalid percentage")

// Table maps each distinct word to its number of occurrences.
type Table map[string]int

// Entry is one row of the ranked cumulative table.
type Entry struct {
	Rank       int
	Word       string
	Count      int
	Cumulative float64
}

// Result is the outcome of Analyze.
type Result struct {
	Total  int
	Unique int
	Target float64
	// Ranking holds every distinct word in rank order.
	Ranking []Entry
	// Selection is the prefix of Ranking that reaches Target.
	Selection []Entry
}

// Analyze counts tokens, ranks them and selects the minimal prefix whose
// cumulative percentage reaches target.
func Analyze(tokens []string, target float64) (Result, error) {
	if err := ValidatePercentage(target); err != nil {
		return Result{}, err
	}
	table := Count(tokens)
	ranking := Rank(table)
	return Result{
		Total:     table.Total(),
		Unique:    len(table),
		Target:    target,
		Ranking:   ranking,
		Selection: Select(ranking, target),
	}, nil
}

// ValidatePercentage reports ErrInvalidPercentage for NaN, infinities and
// values outside [0, 100].
func ValidatePercentage(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 100 {
		return fmt.Errorf("%w: %v is not in [0, 100]", ErrInvalidPercentage, p)
	}
	return nil
}

// Count builds the frequency table in a single pass.
func Count(tokens []string) Table {
	t := make(Table)
	for _, tok := range tokens {
		t[tok]++
	}
	return t
}

// Total returns the sum of all counts.
func (t Table) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Rank orders the table by descending count, breaking ties by word, and
// fills in 1-based ranks and cumulative percentages.
func Rank(t Table) []Entry {
	total := t.Total()
	if total == 0 {
		return nil
	}
	out := make([]Entry, 0, len(t))
	for w, c := range t {
		out = append(out, Entry{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	running := 0
	for i := range out {
		running += out[i].Count
		out[i].Rank = i + 1
		out[i].Cumulative = 100 * float64(running) / float64(total)
	}
	return out
}

// Select returns the entries up to and including the first one whose
// cumulative percentage is >= target. A zero target selects nothing; a target
// that is never reached selects the whole ranking.
func Select(ranking []Entry, target float64) []Entry {
	if target <= 0 || len(ranking) == 0 {
		return nil
	}
	for i, e := range ranking {
		if e.Cumulative >= target {
			return ranking[:i+1]
		}
	}
	return ranking
}

// CoverageAt returns the cumulative percentage covered by the top n words.
func CoverageAt(ranking []Entry, n int) float64 {
	if n <= 0 || len(ranking) == 0 {
		return 0
	}
	if n > len(ranking) {
		n = len(ranking)
	}
	return ranking[n-1].Cumulative
}
