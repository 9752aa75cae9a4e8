package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigilhq/sigil/internal/constants"
	"github.com/sigilhq/sigil/internal/logging"
)

func TestInitLoggerWithWriter_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verbose       bool
		quiet         bool
		expectedLevel zerolog.Level
	}{
		{
			name:          "default is info level",
			expectedLevel: zerolog.InfoLevel,
		},
		{
			name:          "verbose enables debug level",
			verbose:       true,
			expectedLevel: zerolog.DebugLevel,
		},
		{
			name:          "quiet enables warn level",
			quiet:         true,
			expectedLevel: zerolog.WarnLevel,
		},
		{
			name:          "verbose takes precedence over quiet",
			verbose:       true,
			quiet:         true,
			expectedLevel: zerolog.DebugLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := InitLoggerWithWriter(tc.verbose, tc.quiet, &buf)
			assert.Equal(t, tc.expectedLevel, logger.GetLevel())
		})
	}
}

func TestInitLoggerWithWriter_CustomOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)

	logger.Debug().Msg("debug message")

	output := buf.String()
	assert.Contains(t, output, "debug message")
}

func TestInitLoggerWithWriter_StableFieldNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().Msg("field check")

	// Timestamp and message use the short field names
	output := buf.String()
	assert.Contains(t, output, `"ts":`)
	assert.Contains(t, output, `"event":"field check"`)
}

func TestSelectLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.InfoLevel, selectLevel(false, false))
	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, false))
	assert.Equal(t, zerolog.WarnLevel, selectLevel(false, true))
	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, true))
}

func TestSelectOutput_NonTTY(t *testing.T) {
	// This test runs in a non-TTY environment (typical for CI/tests).
	// In non-TTY mode, selectOutput always returns os.Stderr regardless of NO_COLOR.

	output := selectOutput()
	assert.NotNil(t, output)
	assert.Equal(t, os.Stderr, output)
}

func TestSelectOutput_RespectsNoColor(t *testing.T) {
	// t.Setenv automatically restores the original value after test
	t.Setenv("NO_COLOR", "1")

	output := selectOutput()
	assert.NotNil(t, output)
	assert.Equal(t, os.Stderr, output)
}

func TestCreateLogFileWriter_CreatesDirectory(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)
	defer func() { _ = writer.Close() }()

	logDir := filepath.Join(tmpDir, constants.LogsDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateLogFileWriter_CreatesLogFile(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)

	_, err = writer.Write([]byte(`{"level":"info","event":"test"}`))
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Positive(t, info.Size())
}

func TestLogFilePath(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)

	path, err := LogFilePath()
	require.NoError(t, err)

	expected := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	assert.Equal(t, expected, path)
}

func TestInitLogger_WritesToFile(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)

	// Reset log file writer from any previous tests
	logFileWriter = nil

	logger := InitLogger(false, false)

	logger.Info().Str("algorithm", "blake3").Msg("signed input")

	CloseLogFile()

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	data, err := os.ReadFile(logPath) //#nosec G304 -- path is constructed from test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), "algorithm")
	assert.Contains(t, string(data), "blake3")
	assert.Contains(t, string(data), "signed input")
}

func TestInitLogger_RedactsKeyMaterialInFile(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)

	logFileWriter = nil

	logger := InitLogger(false, false)

	// A raw key value must never reach the log file, even if a call site
	// logs it under a key-material field name.
	fakeSeed := "dGVzdG9ubHlzZWVkbWF0ZXJpYWwxMjM"
	logger.Info().Str("secret_key", fakeSeed).Msg("loaded key")

	CloseLogFile()

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	data, err := os.ReadFile(logPath) //#nosec G304 -- path is constructed from test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), logging.RedactedValue)
	assert.NotContains(t, string(data), fakeSeed)
}

func TestCloseLogFile_NoOpWhenNil(_ *testing.T) {
	// Can't use t.Parallel() when accessing package-level state

	logFileWriter = nil

	// Should not panic
	CloseLogFile()
}

func TestCreateLogFileWriter_FailsOnInvalidPath(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	// A file where the home directory should be makes MkdirAll fail
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	t.Setenv(constants.HomeEnvVar, blocker)

	_, err := createLogFileWriter()
	require.Error(t, err)
}
