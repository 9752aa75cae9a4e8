package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sigilerrors "github.com/sigilhq/sigil/internal/errors"
)

func TestBase64Encode_Standard(t *testing.T) {
	isolateSigilEnv(t)

	path := writeTestFile(t, "message.txt", []byte("hello world"))
	stdout, _, err := executeCommand(t, "base64", "encode", path)
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8gd29ybGQ=\n", stdout)
}

func TestBase64Decode_RawBytes(t *testing.T) {
	isolateSigilEnv(t)

	// A trailing newline in the encoded file must not break decoding,
	// and the decoded output must carry no trailing newline of its own.
	path := writeTestFile(t, "encoded.txt", []byte("aGVsbG8gd29ybGQ=\n"))
	stdout, _, err := executeCommand(t, "base64", "decode", path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", stdout)
}

func TestBase64_URLSafeAlphabet(t *testing.T) {
	isolateSigilEnv(t)

	// 0x00 0xff 0xfe encodes to "AP/+" in the standard alphabet and
	// "AP_-" in the URL-safe one, so it distinguishes the two.
	path := writeTestFile(t, "raw.bin", []byte{0x00, 0xff, 0xfe})

	stdout, _, err := executeCommand(t, "base64", "encode", "-f", "urlsafe", path)
	require.NoError(t, err)
	assert.Equal(t, "AP_-\n", stdout)

	encodedPath := writeTestFile(t, "encoded.txt", []byte("AP_-"))
	stdout, _, err = executeCommand(t, "base64", "decode", "-f", "urlsafe", encodedPath)
	require.NoError(t, err)
	assert.Equal(t, string([]byte{0x00, 0xff, 0xfe}), stdout)
}

func TestBase64Decode_InvalidInput(t *testing.T) {
	isolateSigilEnv(t)

	path := writeTestFile(t, "bad.txt", []byte("not!!valid@@base64"))
	_, _, err := executeCommand(t, "base64", "decode", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode base64 input")
	assert.Equal(t, ExitError, ExitCodeForError(err))
}

func TestBase64_UnknownFormat(t *testing.T) {
	isolateSigilEnv(t)

	path := writeTestFile(t, "message.txt", []byte("hello"))
	_, _, err := executeCommand(t, "base64", "encode", "-f", "base32", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, sigilerrors.ErrInvalidArgument)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestBase64Encode_MissingInput(t *testing.T) {
	isolateSigilEnv(t)

	_, _, err := executeCommand(t, "base64", "encode", "/nonexistent/message.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, sigilerrors.ErrInputNotFound)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestBase64Encode_JSONOutput(t *testing.T) {
	isolateSigilEnv(t)

	path := writeTestFile(t, "message.txt", []byte("hello world"))
	stdout, _, err := executeCommand(t, "-o", "json", "base64", "encode", path)
	require.NoError(t, err)

	var result struct {
		Encoding string `json:"encoding"`
		Data     string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "standard", result.Encoding)
	assert.Equal(t, "aGVsbG8gd29ybGQ=", result.Data)
}
