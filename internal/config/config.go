// =============================================================================
// CSV to JSON Converter - Configuration Module
// =============================================================================
//
// This module loads the optional settings file. Every setting has a default
// that reproduces the plain conversion contract, so the converter runs without
// any file at all.
//
// EXAMPLE (csv2json.yaml):
//   log_level: debug
//   csv_settings:
//     delimiter: ";"
//     encoding: windows-1252
//   output:
//     indent: "  "
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/csv2json/internal/types"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the converter settings.
type Config struct {
	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// CSVSettings contains settings for decoding the source file.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// Output contains settings for the generated JSON.
	Output OutputSettings `yaml:"output"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Common values: "," (comma), "|" or "pipe", "\t" or "tab", ";" or "semicolon"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Comment is a single character that marks comment lines. Empty disables
	// comment handling.
	Comment string `yaml:"comment"`

	// LazyQuotes accepts quotes inside unquoted fields and non-doubled quotes
	// inside quoted fields instead of failing the row.
	// Default: false
	LazyQuotes bool `yaml:"lazy_quotes"`

	// Encoding is the character encoding of the source file, by IANA name.
	// Default: "utf-8"
	Encoding string `yaml:"encoding"`
}

// OutputSettings contains settings for the generated JSON.
type OutputSettings struct {
	// Indent pretty-prints the output with this indent string per level.
	// Default: "" (a single compact line)
	Indent string `yaml:"indent"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no settings file is given.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load reads the settings file at configPath. An empty path returns Default().
//
// RETURNS:
//   - A pointer to the Config struct.
//   - A ConfigError if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &types.Error{Kind: types.ConfigError, Msg: "failed to read config file", Path: configPath, Err: err}
	}

	// Parse the YAML.
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &types.Error{Kind: types.ConfigError, Msg: "failed to parse config file", Path: configPath, Err: err}
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, &types.Error{Kind: types.ConfigError, Msg: "invalid configuration", Path: configPath, Err: err}
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "utf-8"
	}
}

// validate checks the values that cannot be caught at decode time.
func validate(config *Config) error {
	if _, err := zapcore.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := config.CSVSettings.Comma(); err != nil {
		return err
	}
	if _, err := config.CSVSettings.CommentRune(); err != nil {
		return err
	}
	if strings.Trim(config.Output.Indent, " \t") != "" {
		return fmt.Errorf("output.indent must be whitespace, got %q", config.Output.Indent)
	}
	return nil
}

// =============================================================================
// CSV SETTINGS HELPERS
// =============================================================================

// Comma returns the delimiter rune for the configured Delimiter.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "", ",", "comma":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}
	r := []rune(s.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("csv_settings.delimiter: unsupported value %q", s.Delimiter)
	}
	return r[0], nil
}

// CommentRune returns the comment rune, or 0 when comments are disabled.
func (s CSVSettings) CommentRune() (rune, error) {
	if s.Comment == "" {
		return 0, nil
	}
	r := []rune(s.Comment)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("csv_settings.comment: unsupported value %q", s.Comment)
	}
	if comma, _ := s.Comma(); r[0] == comma {
		return 0, fmt.Errorf("csv_settings.comment: must differ from the delimiter")
	}
	return r[0], nil
}
