package domain

import (
	"fmt"
	"strings"
)

// DetectorMode selects how the detector preprocesses input.
type DetectorMode string

const (
	DetectorModeText DetectorMode = "text"
	DetectorModeHTML DetectorMode = "html"
)

// ValidDetectorModes enumerates all recognized detector modes.
var ValidDetectorModes = []DetectorMode{DetectorModeText, DetectorModeHTML}

// ValidLogLevels enumerates all recognized log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

const (
	DefaultCorpusRoot  = "testdata"
	DefaultOutputPath  = "encoding_results.json"
	DefaultMaxFileSize = 64 << 20
)

// HarnessConfig holds everything a run needs to know, loaded from .charsnap.yaml.
type HarnessConfig struct {
	CorpusRoot   string       `yaml:"corpus_root"   json:"corpus_root"`
	OutputPath   string       `yaml:"output_path"   json:"output_path"`
	MaxFileSize  int64        `yaml:"max_file_size" json:"max_file_size"`
	DetectorMode DetectorMode `yaml:"detector_mode" json:"detector_mode"`
	LogLevel     string       `yaml:"log_level"     json:"log_level"`
	CacheDir     string       `yaml:"cache_dir"     json:"cache_dir,omitempty"`
	HistoryFile  string       `yaml:"history_file"  json:"history_file,omitempty"`
}

// DefaultConfig returns the conventional corpus and output locations.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		CorpusRoot:   DefaultCorpusRoot,
		OutputPath:   DefaultOutputPath,
		MaxFileSize:  DefaultMaxFileSize,
		DetectorMode: DetectorModeText,
		LogLevel:     "info",
	}
}

// Merge overlays the non-zero fields of override on c.
func (c HarnessConfig) Merge(override HarnessConfig) HarnessConfig {
	result := c
	if override.CorpusRoot != "" {
		result.CorpusRoot = override.CorpusRoot
	}
	if override.OutputPath != "" {
		result.OutputPath = override.OutputPath
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.DetectorMode != "" {
		result.DetectorMode = override.DetectorMode
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.CacheDir != "" {
		result.CacheDir = override.CacheDir
	}
	if override.HistoryFile != "" {
		result.HistoryFile = override.HistoryFile
	}
	return result
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c HarnessConfig) Validate() error {
	if strings.TrimSpace(c.CorpusRoot) == "" {
		return fmt.Errorf("corpus_root must not be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size = %d (must be >= 0, 0 disables the limit)", c.MaxFileSize)
	}
	if c.DetectorMode != "" && !isValidDetectorMode(c.DetectorMode) {
		return fmt.Errorf("unknown detector_mode %q (valid: text, html)", c.DetectorMode)
	}
	if c.LogLevel != "" && !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (valid: %s)", c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}
	return nil
}

func isValidDetectorMode(m DetectorMode) bool {
	for _, v := range ValidDetectorModes {
		if m == v {
			return true
		}
	}
	return false
}

func isValidLogLevel(level string) bool {
	for _, v := range ValidLogLevels {
		if strings.EqualFold(level, v) {
			return true
		}
	}
	return false
}
