package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigilhq/sigil/internal/crypto"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
)

// corruptSignatureText changes one character of an encoded signature while
// keeping it valid base64 of the same decoded length.
func corruptSignatureText(t *testing.T, sigText string) string {
	t.Helper()

	// Avoid the final character so canonical-encoding details never matter.
	corrupted := []byte(sigText)
	idx := 5
	require.Greater(t, len(corrupted), idx)
	if corrupted[idx] == 'A' {
		corrupted[idx] = 'B'
	} else {
		corrupted[idx] = 'A'
	}
	return string(corrupted)
}

func TestTextVerify_Blake3RoundTrip(t *testing.T) {
	isolateSigilEnv(t)

	keyPath := writeTestFile(t, "blake3.txt", bytes.Repeat([]byte{0x42}, 32))
	msgPath := writeTestFile(t, "message.txt", []byte("hello world"))

	stdout, _, err := executeCommand(t, "text", "sign", "-k", keyPath, msgPath)
	require.NoError(t, err)
	sigText := strings.TrimSpace(stdout)

	stdout, _, err = executeCommand(t, "text", "verify", "-k", keyPath, "-s", sigText, msgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signature verified")
}

func TestTextVerify_CorruptedSignatureFails(t *testing.T) {
	isolateSigilEnv(t)

	keyPath := writeTestFile(t, "blake3.txt", bytes.Repeat([]byte{0x42}, 32))
	msgPath := writeTestFile(t, "message.txt", []byte("hello world"))

	stdout, _, err := executeCommand(t, "text", "sign", "-k", keyPath, msgPath)
	require.NoError(t, err)
	sigText := strings.TrimSpace(stdout)

	stdout, _, err = executeCommand(t, "text", "verify", "-k", keyPath, "-s", corruptSignatureText(t, sigText), msgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, sigilerrors.ErrVerificationFailed)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, stdout, "verification failed")
}

func TestTextVerify_Ed25519PublicKey(t *testing.T) {
	isolateSigilEnv(t)

	dir := t.TempDir()
	bufs, err := crypto.GenerateKeys(crypto.AlgorithmEd25519)
	require.NoError(t, err)
	skPath := filepath.Join(dir, "ed25519.sk")
	pkPath := filepath.Join(dir, "ed25519.pk")
	require.NoError(t, os.WriteFile(skPath, bufs[0], 0o600))
	require.NoError(t, os.WriteFile(pkPath, bufs[1], 0o600))

	msgPath := writeTestFile(t, "message.txt", []byte("hello world"))

	stdout, _, err := executeCommand(t, "text", "sign", "-a", "ed25519", "-k", skPath, msgPath)
	require.NoError(t, err)
	sigText := strings.TrimSpace(stdout)

	// Verification needs only the public half.
	stdout, _, err = executeCommand(t, "text", "verify", "-a", "ed25519", "-k", pkPath, "-s", sigText, msgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signature verified")
}

func TestTextVerify_BadEncodingIsErrorNotFailure(t *testing.T) {
	isolateSigilEnv(t)

	keyPath := writeTestFile(t, "blake3.txt", bytes.Repeat([]byte{0x42}, 32))
	msgPath := writeTestFile(t, "message.txt", []byte("hello world"))

	_, _, err := executeCommand(t, "text", "verify", "-k", keyPath, "-s", "***not base64***", msgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrInvalidSignatureEncoding)
	assert.NotErrorIs(t, err, sigilerrors.ErrVerificationFailed)
}

func TestTextVerify_WrongLengthSignature(t *testing.T) {
	isolateSigilEnv(t)

	keyPath := writeTestFile(t, "blake3.txt", bytes.Repeat([]byte{0x42}, 32))
	msgPath := writeTestFile(t, "message.txt", []byte("hello world"))

	short := crypto.EncodeSignature([]byte("short"))
	_, _, err := executeCommand(t, "text", "verify", "-k", keyPath, "-s", short, msgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrInvalidSignatureSize)
	assert.NotErrorIs(t, err, sigilerrors.ErrVerificationFailed)
}

func TestTextVerify_JSONVerdicts(t *testing.T) {
	isolateSigilEnv(t)

	keyPath := writeTestFile(t, "blake3.txt", bytes.Repeat([]byte{0x42}, 32))
	msgPath := writeTestFile(t, "message.txt", []byte("hello world"))

	stdout, _, err := executeCommand(t, "text", "sign", "-k", keyPath, msgPath)
	require.NoError(t, err)
	sigText := strings.TrimSpace(stdout)

	var result struct {
		Algorithm string `json:"algorithm"`
		Valid     bool   `json:"valid"`
	}

	stdout, _, err = executeCommand(t, "-o", "json", "text", "verify", "-k", keyPath, "-s", sigText, msgPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.Valid)

	// An invalid signature still produces a JSON verdict body; the error
	// return only drives the exit code.
	stdout, _, err = executeCommand(t, "-o", "json", "text", "verify", "-k", keyPath, "-s", corruptSignatureText(t, sigText), msgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, sigilerrors.ErrVerificationFailed)
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Valid)
}

func TestTextVerify_SigFlagRequired(t *testing.T) {
	isolateSigilEnv(t)

	msgPath := writeTestFile(t, "message.txt", []byte("hello world"))

	_, _, err := executeCommand(t, "text", "verify", msgPath)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
