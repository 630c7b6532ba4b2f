package app

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks missing or malformed command-line input: wrong
// argument count, a non-numeric or out-of-range percentage, or an unsupported
// file extension.
var ErrInvalidArgument = errors.New("invalid argument")

// Pipeline stage names reported in StageError.
const (
	StageArgs    = "args"
	StageConfig  = "config"
	StageExtract = "extract"
	StageAnalyze = "analyze"
	StageReport  = "report"
)

// StageError records which pipeline stage failed. It unwraps to the cause so
// callers can match sentinels with errors.Is.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// invalidArg tags err as an ErrInvalidArgument while keeping its own chain.
func invalidArg(err error) error {
	if errors.Is(err, ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
