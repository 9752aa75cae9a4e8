package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeCommand runs the full root command with the given arguments and
// returns everything written to stdout and stderr plus the execution error.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// isolateSigilEnv points the sigil home at a fresh temp directory and
// neutralizes SIGIL_* config overrides so the ambient environment cannot
// leak into a test. Returns the temp home directory.
//
// Tests calling this cannot use t.Parallel() because of t.Setenv.
func isolateSigilEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("SIGIL_HOME", home)
	for _, key := range []string{
		"SIGIL_TEXT_ALGORITHM",
		"SIGIL_TEXT_KEYS_DIR",
		"SIGIL_GENPASS_LENGTH",
		"SIGIL_CSV_FORMAT",
		"SIGIL_CSV_DELIMITER",
	} {
		t.Setenv(key, "")
	}
	return home
}

// writeTestFile writes data to name inside a fresh temp directory and
// returns the full path.
func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// chdirTemp switches the working directory to a fresh temp directory for
// the duration of the test, for commands that resolve relative paths.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}
