package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/sightwords/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath   string
		outputSuffix string
		enablePDF    bool
		showStats    bool
		verbose      bool
		showVersion  bool
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file_path> <percentage>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Lists the most frequent words of a .txt or .epub file that together")
		fmt.Fprintln(flag.CommandLine.Output(), "account for <percentage> (0-100) of all word occurrences.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	flag.StringVar(&outputSuffix, "suffix", app.DefaultOutputSuffix, "Suffix appended to the input base name for output files")
	flag.BoolVar(&enablePDF, "pdf", false, "Also render the table to a PDF next to the CSV")
	flag.BoolVar(&showStats, "stats", false, "Print vocabulary statistics after the table")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")
	flag.Parse()

	explicit := explicitFlags(flag.CommandLine)

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}

	cfg := app.Config{
		OutputSuffix: outputSuffix,
		EnablePDF:    enablePDF,
		ShowStats:    showStats,
		Verbose:      verbose,
	}
	if err := configure(&cfg, configPath, explicit, flag.Args()); err != nil {
		log.Error().Err(err).Msg("invalid invocation")
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// explicitFlags names the flags set on the command line, including those set
// to their default value.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// configure overlays the optional config file, skipping fields whose flag is
// in explicit, and reads positional arguments.
func configure(cfg *app.Config, configPath string, explicit map[string]bool, args []string) error {
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return &app.StageError{Stage: app.StageConfig, Err: fmt.Errorf("%w: %v", app.ErrInvalidArgument, err)}
		}
		app.ApplyFileConfig(cfg, fc, explicit)
	}
	if err := app.ParseArgs(cfg, args); err != nil {
		return &app.StageError{Stage: app.StageArgs, Err: err}
	}
	return nil
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
