package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.sigil/logs/sigil.log
	CLILogFileName = "sigil.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global sigil configuration file.
	// This file is located in the sigil home directory.
	GlobalConfigName = "config.yaml"
)

// Key file names written by text key generation. The asymmetric secret and
// public halves are separate files so they can be distributed independently.
const (
	// Blake3KeyFileName holds the 32-byte symmetric key.
	Blake3KeyFileName = "blake3.txt"

	// Ed25519SecretFileName holds the ed25519 private key.
	Ed25519SecretFileName = "ed25519.sk"

	// Ed25519PublicFileName holds the ed25519 public key.
	Ed25519PublicFileName = "ed25519.pk"
)
