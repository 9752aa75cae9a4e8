// Package constants provides centralized constant values used throughout sigil.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "os"

// Directory names and paths used by sigil for organizing data.
const (
	// SigilHome is the hidden directory name where sigil stores all its data.
	// This directory is created in the user's home directory.
	SigilHome = ".sigil"

	// KeysDir is the directory name where generated key files are stored.
	KeysDir = "keys"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// HomeEnvVar overrides the location of the sigil home directory.
// When set, it replaces ~/.sigil entirely.
const HomeEnvVar = "SIGIL_HOME"

// EnvPrefix is the prefix for configuration environment variables,
// e.g. SIGIL_TEXT_ALGORITHM overrides text.algorithm.
const EnvPrefix = "SIGIL"

// File permissions for data written by sigil.
const (
	// KeyFileMode restricts generated key files to the owning user.
	KeyFileMode os.FileMode = 0o600

	// DirMode is the permission used when creating sigil-owned directories.
	DirMode os.FileMode = 0o750

	// OutputFileMode is the permission for non-sensitive output files.
	OutputFileMode os.FileMode = 0o644
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
