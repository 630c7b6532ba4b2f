package app

import "io"

// Config holds runtime configuration for the application.
type Config struct {
	// Positional arguments
	InputPath  string
	Percentage float64

	// Output
	OutputSuffix string
	EnablePDF    bool

	// Behavior
	ShowStats bool
	Verbose   bool

	// Stdout receives the console table. Nil means os.Stdout.
	Stdout io.Writer
}

// DefaultOutputSuffix is appended to the input base name to name the CSV.
const DefaultOutputSuffix = "_top_words"
