package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/sightwords/internal/extract"
	"github.com/hyperifyio/sightwords/internal/freq"
	"github.com/hyperifyio/sightwords/internal/report"
	"github.com/hyperifyio/sightwords/internal/tokenize"
)

// App runs one sight-word analysis: extract, tokenize, analyze, report.
type App struct {
	cfg       Config
	extractor extract.Extractor
	out       io.Writer
}

// Summary describes a completed run.
type Summary struct {
	Result  freq.Result
	CSVPath string
	PDFPath string
}

// New validates cfg and selects the extractor. The input file is not opened.
func New(ctx context.Context, cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, stageErr(StageArgs, err)
	}
	ex, err := extract.ForPath(cfg.InputPath)
	if err != nil {
		return nil, stageErr(StageArgs, invalidArg(err))
	}
	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &App{cfg: cfg, extractor: ex, out: out}, nil
}

func (a *App) Close() {
	// nothing to release; files are closed by each stage
}

// Run executes the pipeline. Every failure is returned as a *StageError.
func (a *App) Run(ctx context.Context) error {
	_, err := a.Analyze(ctx)
	return err
}

// Analyze executes the pipeline and returns what was produced.
func (a *App) Analyze(ctx context.Context) (Summary, error) {
	var sum Summary

	// 1) Extract raw text
	log.Debug().Str("path", a.cfg.InputPath).Str("extractor", a.extractor.Name()).Msg("extracting text")
	doc, err := a.extractor.Extract(a.cfg.InputPath)
	if err != nil {
		return sum, stageErr(StageExtract, err)
	}
	if err := ctx.Err(); err != nil {
		return sum, stageErr(StageExtract, err)
	}

	// 2) Tokenize and analyze
	tokens := tokenize.Tokenize(doc.Text)
	log.Debug().Int("chars", len(doc.Text)).Int("tokens", len(tokens)).Msg("tokenized")
	res, err := freq.Analyze(tokens, a.cfg.Percentage)
	if err != nil {
		return sum, stageErr(StageAnalyze, invalidArg(err))
	}
	sum.Result = res
	log.Info().Int("total", res.Total).Int("unique", res.Unique).Int("selected", len(res.Selection)).Msg("analysis complete")
	if err := ctx.Err(); err != nil {
		return sum, stageErr(StageAnalyze, err)
	}

	// 3) Write the artifact, then the console table
	sum.CSVPath = deriveOutputPath(a.cfg.InputPath, a.cfg.OutputSuffix, ".csv")
	if err := report.WriteCSV(sum.CSVPath, res.Selection); err != nil {
		return sum, stageErr(StageReport, err)
	}
	log.Debug().Str("out", sum.CSVPath).Int("rows", len(res.Selection)).Msg("wrote csv")

	if a.cfg.EnablePDF {
		sum.PDFPath = deriveOutputPath(a.cfg.InputPath, a.cfg.OutputSuffix, ".pdf")
		if err := writeTablePDF(res, pdfTitle(doc, a.cfg.InputPath), sum.PDFPath); err != nil {
			return sum, stageErr(StageReport, err)
		}
		log.Debug().Str("out", sum.PDFPath).Msg("wrote pdf")
	}

	if err := report.Console(a.out, res); err != nil {
		return sum, stageErr(StageReport, fmt.Errorf("%w: console: %v", report.ErrWrite, err))
	}
	if a.cfg.ShowStats {
		if err := report.ConsoleStats(a.out, freq.Summarize(tokens, res.Ranking), res.Ranking); err != nil {
			return sum, stageErr(StageReport, fmt.Errorf("%w: console: %v", report.ErrWrite, err))
		}
	}
	fmt.Fprintf(a.out, "\nTop words have been saved to: %s\n", sum.CSVPath)
	if sum.PDFPath != "" {
		fmt.Fprintf(a.out, "PDF table has been saved to: %s\n", sum.PDFPath)
	}
	return sum, nil
}
