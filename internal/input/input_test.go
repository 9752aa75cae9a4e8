package input_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/input"
)

func TestOpen_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	r, err := input.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestOpen_Stdin(t *testing.T) {
	r, err := input.Open("-")
	require.NoError(t, err)

	// Closing must not close the real stdin.
	require.NoError(t, r.Close())

	_, err = os.Stdin.Stat()
	assert.NoError(t, err, "stdin should remain usable after Close")
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	_, err := input.Open(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(existing, []byte("a,b\n1,2\n"), 0o600))

	tests := []struct {
		name    string
		arg     string
		wantErr error
	}{
		{name: "stdin dash is always valid", arg: "-", wantErr: nil},
		{name: "existing file is valid", arg: existing, wantErr: nil},
		{name: "missing file is rejected", arg: filepath.Join(dir, "missing"), wantErr: errors.ErrInputNotFound},
		{name: "directory is rejected", arg: dir, wantErr: errors.ErrInvalidArgument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := input.Validate(tc.arg)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
