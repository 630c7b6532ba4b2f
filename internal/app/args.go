package app

import (
    "fmt"
    "strconv"
    "strings"
)

// ParseArgs reads the positional <file_path> <percentage> arguments into cfg.
// A trailing % on the percentage is accepted.
func ParseArgs(cfg *Config, args []string) error {
    if len(args) != 2 {
        return fmt.Errorf("%w: expected <file_path> <percentage>, got %d argument(s)", ErrInvalidArgument, len(args))
    }
    path := strings.TrimSpace(args[0])
    if path == "" {
        return fmt.Errorf("%w: file path is empty", ErrInvalidArgument)
    }
    raw := strings.TrimSuffix(strings.TrimSpace(args[1]), "%")
    pct, err := strconv.ParseFloat(raw, 64)
    if err != nil {
        return fmt.Errorf("%w: percentage %q is not a number", ErrInvalidArgument, args[1])
    }
    cfg.InputPath = path
    cfg.Percentage = pct
    return nil
}
