// Package config provides configuration management for sigil with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (SIGIL_* prefix)
//  3. Project config (.sigil/config.yaml)
//  4. Global config (~/.sigil/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import (
	"path/filepath"
)

// Config is the root configuration structure for sigil.
// It contains all configuration sections for the application.
type Config struct {
	// Text contains settings for signing and verifying text input.
	Text TextConfig `yaml:"text" mapstructure:"text"`

	// GenPass contains default settings for password generation.
	GenPass GenPassConfig `yaml:"genpass" mapstructure:"genpass"`

	// CSV contains default settings for CSV conversion.
	CSV CSVConfig `yaml:"csv" mapstructure:"csv"`
}

// TextConfig contains settings for the text sign/verify/generate commands.
type TextConfig struct {
	// Algorithm is the default signing algorithm when --algorithm is not given.
	// Valid values: "blake3", "ed25519" (case-insensitive).
	// Default: "blake3"
	Algorithm string `yaml:"algorithm" mapstructure:"algorithm"`

	// KeysDir is the directory where generated key files are written and
	// where key lookups fall back to. Empty means ~/.sigil/keys.
	KeysDir string `yaml:"keys_dir" mapstructure:"keys_dir"`
}

// ResolveKeysDir returns the effective keys directory.
// A configured keys_dir wins; otherwise the path under the sigil home is used.
func (c *TextConfig) ResolveKeysDir() (string, error) {
	if c.KeysDir != "" {
		return c.KeysDir, nil
	}
	return DefaultKeysDir()
}

// GenPassConfig contains default settings for password generation.
// Character classes default to enabled; disable individual classes per call
// with the corresponding --no-* flags.
type GenPassConfig struct {
	// Length is the default password length.
	// Default: 16
	Length int `yaml:"length" mapstructure:"length"`

	// Uppercase includes uppercase letters (confusable O and I excluded).
	// Default: true
	Uppercase bool `yaml:"uppercase" mapstructure:"uppercase"`

	// Lowercase includes lowercase letters (confusable l excluded).
	// Default: true
	Lowercase bool `yaml:"lowercase" mapstructure:"lowercase"`

	// Numbers includes digits (confusable 0 excluded).
	// Default: true
	Numbers bool `yaml:"numbers" mapstructure:"numbers"`

	// Symbols includes punctuation characters.
	// Default: true
	Symbols bool `yaml:"symbols" mapstructure:"symbols"`
}

// CSVConfig contains default settings for CSV conversion.
type CSVConfig struct {
	// Format is the default output format when --format is not given.
	// Valid values: "json", "yaml" (case-insensitive).
	// Default: "json"
	Format string `yaml:"format" mapstructure:"format"`

	// Delimiter is the field delimiter used when reading CSV input.
	// Must be a single character.
	// Default: ","
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// DefaultOutputPath returns the default output path for a converted file,
// "output" with the format's extension in the current directory.
func (c *CSVConfig) DefaultOutputPath(format string) string {
	return filepath.Join(".", "output."+format)
}
