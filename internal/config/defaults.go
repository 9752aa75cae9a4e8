package config

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			// Algorithm: blake3 is fast and needs only one small key file.
			// Users wanting public verification should override to ed25519.
			Algorithm: "blake3",

			// KeysDir: empty means use ~/.sigil/keys.
			KeysDir: "",
		},
		GenPass: GenPassConfig{
			// Length: 16 characters clears common password policies while
			// staying typeable.
			Length: 16,

			// All character classes are enabled so generated passwords
			// satisfy the strictest policies out of the box.
			Uppercase: true,
			Lowercase: true,
			Numbers:   true,
			Symbols:   true,
		},
		CSV: CSVConfig{
			// Format: JSON is the most widely consumed output format.
			Format: "json",

			// Delimiter: standard comma-separated input.
			Delimiter: ",",
		},
	}
}
