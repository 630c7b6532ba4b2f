package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/sightwords/internal/extract"
    "github.com/hyperifyio/sightwords/internal/freq"
)

// FileConfig represents the single-file configuration schema.
// Positional arguments are never read from the file.
type FileConfig struct {
    Output struct {
        Suffix string `yaml:"suffix" json:"suffix"`
        PDF    bool   `yaml:"pdf" json:"pdf"`
    } `yaml:"output" json:"output"`

    Stats   bool `yaml:"stats" json:"stats"`
    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := strings.ToLower(filepath.Ext(path)); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg. explicit holds
// the names of command-line flags the user set ("suffix", "pdf", "stats",
// "v"); those fields keep their flag value even when it equals the default.
func ApplyFileConfig(cfg *Config, fc FileConfig, explicit map[string]bool) {
    if cfg == nil { return }

    if !explicit["suffix"] && fc.Output.Suffix != "" { cfg.OutputSuffix = fc.Output.Suffix }
    if !explicit["pdf"] && fc.Output.PDF { cfg.EnablePDF = true }
    if !explicit["stats"] && fc.Stats { cfg.ShowStats = true }
    if !explicit["v"] && fc.Verbose { cfg.Verbose = true }
}

// ValidateConfig checks the settings a run needs before any file is opened.
// Failures match ErrInvalidArgument.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.InputPath) == "" {
        return fmt.Errorf("%w: input path is required", ErrInvalidArgument)
    }
    if _, err := extract.ForPath(cfg.InputPath); err != nil {
        return invalidArg(err)
    }
    if err := freq.ValidatePercentage(cfg.Percentage); err != nil {
        return invalidArg(err)
    }
    if strings.ContainsAny(cfg.OutputSuffix, `/\`) {
        return invalidArg(errors.New("output suffix must not contain path separators"))
    }
    return nil
}
