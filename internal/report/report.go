// Package report renders the ranked word table to the console and writes the
// selected rows to a CSV artifact.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hyperifyio/sightwords/internal/freq"
)

// ErrWrite is returned when the output artifact cannot be created or written.
var ErrWrite = errors.New("write error")

// Header names the CSV columns.
var Header = []string{"Rank", "Word", "Count", "Cumulative %"}

const rule = "---------------------------------------------"

// FormatPercent renders a percentage without trailing zeros, e.g. 80 or 12.5.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Console prints the summary header and one row per selected entry. Counts
// carry grouping separators; cumulative percentages have two decimals.
func Console(w io.Writer, res freq.Result) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	p.Fprintf(&b, "\nAnalyzing text containing %d total words (%d unique words)\n", res.Total, res.Unique)
	fmt.Fprintf(&b, "Words accounting for %s%% of the text:\n", FormatPercent(res.Target))
	b.WriteString("\n#\tWord\t\tCount\t\tCumulative %\n")
	b.WriteString(rule + "\n")
	for _, e := range res.Selection {
		fmt.Fprintf(&b, "%d\t%-15s%-15s%.2f%%\n", e.Rank, e.Word, p.Sprintf("%d", e.Count), e.Cumulative)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ConsoleStats prints the supplementary statistics block.
func ConsoleStats(w io.Writer, s freq.Stats, ranking []freq.Entry) error {
	var b strings.Builder
	b.WriteString("\nText statistics:\n")
	fmt.Fprintf(&b, "  Vocabulary richness: %.2f%%\n", 100*s.VocabularyRichness)
	fmt.Fprintf(&b, "  Average word length: %.2f characters\n", s.AvgWordLength)
	for _, n := range freq.Milestones {
		if n > len(ranking) {
			break
		}
		fmt.Fprintf(&b, "  Top %4d words cover: %.2f%%\n", n, freq.CoverageAt(ranking, n))
	}
	if len(s.Longest) > 0 {
		fmt.Fprintf(&b, "  Longest words: %s\n", strings.Join(s.Longest, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV writes the header row and one row per entry to path, replacing any
// existing file. Numbers are written without grouping separators.
func WriteCSV(path string, entries []freq.Entry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWrite, cerr)
		}
	}()
	if err := writeRows(f, entries); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

func writeRows(w io.Writer, entries []freq.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Rank),
			e.Word,
			strconv.Itoa(e.Count),
			strconv.FormatFloat(e.Cumulative, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
