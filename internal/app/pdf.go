package app

import (
    "fmt"
    "path/filepath"

    "github.com/jung-kurt/gofpdf"

    "github.com/hyperifyio/sightwords/internal/extract"
    "github.com/hyperifyio/sightwords/internal/freq"
    "github.com/hyperifyio/sightwords/internal/report"
)

// pdfTitle names the document by its own title when the input carries one,
// otherwise by the input file name.
func pdfTitle(doc extract.Document, inputPath string) string {
    name := doc.Title
    if name == "" {
        name = filepath.Base(inputPath)
    }
    return "Sight words: " + name
}

// writeTablePDF renders the selected rows as a simple A4 table. Words are
// translated to the core font code page, so characters outside cp1252 show
// as substitutes; the CSV remains the exact artifact.
func writeTablePDF(res freq.Result, title string, outPath string) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.SetTitle(title, true)
    pdf.SetFont("Helvetica", "B", 14)
    pdf.AddPage()
    pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

    pdf.SetFont("Helvetica", "", 11)
    pdf.MultiCell(0, 5, fmt.Sprintf("%d total words (%d unique words). Words accounting for %s%% of the text:",
        res.Total, res.Unique, report.FormatPercent(res.Target)), "", "L", false)
    pdf.Ln(3)

    widths := []float64{15, 70, 35, 40}
    pdf.SetFont("Helvetica", "B", 11)
    for i, h := range report.Header {
        align := "R"
        if i == 1 { align = "L" }
        pdf.CellFormat(widths[i], 7, h, "B", 0, align, false, 0, "")
    }
    pdf.Ln(-1)

    pdf.SetFont("Helvetica", "", 10)
    for _, e := range res.Selection {
        pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", e.Rank), "", 0, "R", false, 0, "")
        pdf.CellFormat(widths[1], 6, tr(e.Word), "", 0, "L", false, 0, "")
        pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", e.Count), "", 0, "R", false, 0, "")
        pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f%%", e.Cumulative), "", 1, "R", false, 0, "")
    }

    if err := pdf.OutputFileAndClose(outPath); err != nil {
        return fmt.Errorf("%w: %s: %v", report.ErrWrite, outPath, err)
    }
    return nil
}
