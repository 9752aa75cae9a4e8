package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath_JSONOutput(t *testing.T) {
	home := isolateSigilEnv(t)

	stdout, _, err := executeCommand(t, "-o", "json", "config", "path")
	require.NoError(t, err)

	var paths struct {
		GlobalConfig  string `json:"global_config"`
		ProjectConfig string `json:"project_config"`
		KeysDir       string `json:"keys_dir"`
		LogFile       string `json:"log_file"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &paths))

	assert.Equal(t, filepath.Join(home, "config.yaml"), paths.GlobalConfig)
	assert.Equal(t, filepath.Join(".sigil", "config.yaml"), paths.ProjectConfig)
	assert.Equal(t, filepath.Join(home, "keys"), paths.KeysDir)
	assert.Equal(t, filepath.Join(home, "logs", "sigil.log"), paths.LogFile)
}

func TestConfigPath_Table(t *testing.T) {
	home := isolateSigilEnv(t)

	stdout, _, err := executeCommand(t, "config", "path")
	require.NoError(t, err)

	assert.Contains(t, stdout, "LOCATION")
	assert.Contains(t, stdout, "PATH")
	assert.Contains(t, stdout, "Global config")
	assert.Contains(t, stdout, "Keys directory")
	assert.Contains(t, stdout, "Log file")
	assert.Contains(t, stdout, home)
}
