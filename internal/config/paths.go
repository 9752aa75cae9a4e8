package config

import (
	"os"
	"path/filepath"

	"github.com/sigilhq/sigil/internal/constants"
	"github.com/sigilhq/sigil/internal/errors"
)

// HomeDir returns the sigil home directory.
// The SIGIL_HOME environment variable overrides the default ~/.sigil.
//
// Returns an error if the home directory cannot be determined.
func HomeDir() (string, error) {
	if sigilHome := os.Getenv(constants.HomeEnvVar); sigilHome != "" {
		return sigilHome, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.SigilHome), nil
}

// GlobalConfigDir returns the path to the global sigil configuration directory.
// This is typically ~/.sigil on Unix systems.
func GlobalConfigDir() (string, error) {
	return HomeDir()
}

// ProjectConfigDir returns the relative path to the project configuration directory.
// This is always .sigil relative to the project root.
func ProjectConfigDir() string {
	return constants.SigilHome
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.sigil/config.yaml on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .sigil/config.yaml relative to the project root.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.GlobalConfigName)
}

// DefaultKeysDir returns the default directory for generated key files,
// typically ~/.sigil/keys.
func DefaultKeysDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.KeysDir), nil
}
