package config

import (
	"strings"
	"unicode/utf8"

	"github.com/sigilhq/sigil/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - text.algorithm must be "blake3" or "ed25519" (case-insensitive)
//   - genpass.length must be positive
//   - at least one genpass character class must be enabled
//   - csv.format must be "json" or "yaml" (case-insensitive)
//   - csv.delimiter must be a single character
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateTextConfig(&cfg.Text); err != nil {
		return err
	}

	if err := validateGenPassConfig(&cfg.GenPass); err != nil {
		return err
	}

	if err := validateCSVConfig(&cfg.CSV); err != nil {
		return err
	}

	return nil
}

// validateTextConfig checks text-specific configuration values.
func validateTextConfig(cfg *TextConfig) error {
	switch strings.ToLower(cfg.Algorithm) {
	case "blake3", "ed25519":
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalidText,
			"text.algorithm must be blake3 or ed25519, got %q", cfg.Algorithm)
	}
}

// validateGenPassConfig checks genpass-specific configuration values.
func validateGenPassConfig(cfg *GenPassConfig) error {
	if cfg.Length <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidGenPass,
			"genpass.length must be positive, got %d", cfg.Length)
	}

	if !cfg.Uppercase && !cfg.Lowercase && !cfg.Numbers && !cfg.Symbols {
		return errors.Wrap(errors.ErrConfigInvalidGenPass,
			"at least one genpass character class must be enabled")
	}

	return nil
}

// validateCSVConfig checks csv-specific configuration values.
func validateCSVConfig(cfg *CSVConfig) error {
	switch strings.ToLower(cfg.Format) {
	case "json", "yaml":
	default:
		return errors.Wrapf(errors.ErrConfigInvalidCSV,
			"csv.format must be json or yaml, got %q", cfg.Format)
	}

	if utf8.RuneCountInString(cfg.Delimiter) != 1 {
		return errors.Wrapf(errors.ErrConfigInvalidCSV,
			"csv.delimiter must be a single character, got %q", cfg.Delimiter)
	}

	return nil
}
