package app

import (
    "path/filepath"
    "strings"
)

// deriveOutputPath places an artifact next to the input document, named after
// its base name without extension plus suffix and ext,
// e.g. books/moby.epub -> books/moby_top_words.csv.
func deriveOutputPath(inputPath, suffix, ext string) string {
    if strings.TrimSpace(suffix) == "" { suffix = DefaultOutputSuffix }
    base := filepath.Base(inputPath)
    stem := strings.TrimSuffix(base, filepath.Ext(base))
    return filepath.Join(filepath.Dir(inputPath), stem+suffix+ext)
}
