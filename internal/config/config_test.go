package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "blake3", cfg.Text.Algorithm)
	assert.Empty(t, cfg.Text.KeysDir)

	assert.Equal(t, 16, cfg.GenPass.Length)
	assert.True(t, cfg.GenPass.Uppercase)
	assert.True(t, cfg.GenPass.Lowercase)
	assert.True(t, cfg.GenPass.Numbers)
	assert.True(t, cfg.GenPass.Symbols)

	assert.Equal(t, "json", cfg.CSV.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
}

func TestTextConfig_ResolveKeysDir(t *testing.T) {
	t.Run("configured directory wins", func(t *testing.T) {
		cfg := TextConfig{KeysDir: "/opt/sigil/keys"}

		dir, err := cfg.ResolveKeysDir()
		require.NoError(t, err)
		assert.Equal(t, "/opt/sigil/keys", dir)
	})

	t.Run("falls back to sigil home", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("SIGIL_HOME", tmpDir)

		cfg := TextConfig{}

		dir, err := cfg.ResolveKeysDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "keys"), dir)
	})
}

func TestCSVConfig_DefaultOutputPath(t *testing.T) {
	t.Parallel()

	cfg := CSVConfig{}
	assert.Equal(t, "output.json", cfg.DefaultOutputPath("json"))
	assert.Equal(t, "output.yaml", cfg.DefaultOutputPath("yaml"))
}
