// Package input resolves command input arguments to readers.
//
// Every sigil command that reads data accepts either a file path or "-",
// which means standard input. Resolution happens here so the processing
// packages only ever see an io.Reader.
package input

import (
	"io"
	"os"

	"github.com/sigilhq/sigil/internal/errors"
)

// StdinName is the argument value that selects standard input.
const StdinName = "-"

// Open resolves name to a reader. "-" returns stdin wrapped so that
// Close is a no-op; anything else is opened as a file path.
func Open(name string) (io.ReadCloser, error) {
	if name == StdinName {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name) //nolint:gosec // Path comes from a user-supplied flag
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input %q", name)
	}
	return f, nil
}

// Validate reports whether name is acceptable as an input argument
// before any work starts. "-" is always valid; paths must exist and
// not be directories.
func Validate(name string) error {
	if name == StdinName {
		return nil
	}
	info, err := os.Stat(name)
	if os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrInputNotFound, "input %q", name)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to stat input %q", name)
	}
	if info.IsDir() {
		return errors.Wrapf(errors.ErrInvalidArgument, "input %q is a directory", name)
	}
	return nil
}
