package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sigilerrors "github.com/sigilhq/sigil/internal/errors"
)

// TestOutputInterface_TTYOutput tests TTYOutput implements the Output interface.
func TestOutputInterface_TTYOutput(t *testing.T) {
	var buf bytes.Buffer
	var out Output = NewTTYOutput(&buf)
	assert.NotNil(t, out)
}

// TestOutputInterface_JSONOutput tests JSONOutput implements the Output interface.
func TestOutputInterface_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	var out Output = NewJSONOutput(&buf)
	assert.NotNil(t, out)
}

func TestTTYOutput_Success(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Success("signature verified")
	output := buf.String()
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "signature verified")
}

func TestTTYOutput_Error(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Error(sigilerrors.ErrInputNotFound)
	output := buf.String()
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "not found")
}

func TestTTYOutput_Error_WithSuggestion(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Error(sigilerrors.ErrKeyFileExists)
	output := buf.String()
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "▸ Try:")
	assert.Contains(t, output, "--force")
}

func TestTTYOutput_Warning(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Warning("weak password")
	output := buf.String()
	assert.Contains(t, output, "⚠")
	assert.Contains(t, output, "weak password")
}

func TestTTYOutput_Info(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Info("wrote keys to ~/.sigil/keys")
	assert.Contains(t, buf.String(), "wrote keys to ~/.sigil/keys")
}

func TestTTYOutput_Table(t *testing.T) {
	t.Run("basic table", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewTTYOutput(&buf)
		out.Table([]string{"Setting", "Value"}, [][]string{
			{"text.algorithm", "blake3"},
			{"genpass.length", "16"},
		})
		output := buf.String()
		assert.Contains(t, output, "Setting")
		assert.Contains(t, output, "Value")
		assert.Contains(t, output, "text.algorithm")
		assert.Contains(t, output, "blake3")
		assert.Contains(t, output, "genpass.length")
		assert.Contains(t, output, "16")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewTTYOutput(&buf)
		out.Table([]string{}, [][]string{})
		assert.Empty(t, buf.String())
	})

	t.Run("table with short row", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewTTYOutput(&buf)
		out.Table([]string{"A", "B", "C"}, [][]string{
			{"1"},
		})
		output := buf.String()
		assert.Contains(t, output, "A")
		assert.Contains(t, output, "B")
		assert.Contains(t, output, "C")
		assert.Contains(t, output, "1")
	})
}

func TestTTYOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	err := out.JSON(map[string]string{"algorithm": "ed25519"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "algorithm")
	assert.Contains(t, buf.String(), "ed25519")
}

func TestJSONOutput_Success(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Success("signature verified")

	var result jsonMessage
	err := json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Type)
	assert.Equal(t, "signature verified", result.Message)
}

func TestJSONOutput_Error(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Error(sigilerrors.ErrInputNotFound)

		var result jsonError
		err := json.Unmarshal(buf.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "error", result.Type)
		assert.Contains(t, result.Message, "not found")
		assert.Empty(t, result.Details)
	})

	t.Run("wrapped error includes details", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		wrappedErr := fmt.Errorf("loading key: %w", sigilerrors.ErrInputNotFound)
		out.Error(wrappedErr)

		var result jsonError
		err := json.Unmarshal(buf.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "error", result.Type)
		assert.Contains(t, result.Message, "loading key")
		assert.Contains(t, result.Details, "not found")
	})

	t.Run("known error includes suggestion", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Error(sigilerrors.ErrKeyFileExists)

		var result jsonError
		err := json.Unmarshal(buf.Bytes(), &result)
		require.NoError(t, err)
		assert.Contains(t, result.Suggestion, "--force")
	})
}

func TestJSONOutput_Warning(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Warning("weak password")

	var result jsonMessage
	err := json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "warning", result.Type)
	assert.Equal(t, "weak password", result.Message)
}

func TestJSONOutput_Info(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Info("using key ~/.sigil/keys/blake3.txt")

	var result jsonMessage
	err := json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "info", result.Type)
	assert.Equal(t, "using key ~/.sigil/keys/blake3.txt", result.Message)
}

func TestJSONOutput_Table(t *testing.T) {
	t.Run("basic table", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Table([]string{"setting", "value"}, [][]string{
			{"text.algorithm", "blake3"},
			{"csv.format", "json"},
		})

		var result []map[string]string
		err := json.Unmarshal(buf.Bytes(), &result)
		require.NoError(t, err)
		require.Len(t, result, 2)

		assert.Equal(t, "text.algorithm", result[0]["setting"])
		assert.Equal(t, "blake3", result[0]["value"])
		assert.Equal(t, "csv.format", result[1]["setting"])
		assert.Equal(t, "json", result[1]["value"])
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Table([]string{}, [][]string{})

		var result []map[string]string
		err := json.Unmarshal(buf.Bytes(), &result)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("table with missing values", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Table([]string{"A", "B", "C"}, [][]string{
			{"1", "2"},
		})

		var result []map[string]string
		err := json.Unmarshal(buf.Bytes(), &result)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "1", result[0]["A"])
		assert.Equal(t, "2", result[0]["B"])
		assert.Equal(t, "", result[0]["C"])
	})
}

func TestJSONOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	err := out.JSON(map[string]int{"count": 3})
	require.NoError(t, err)

	var result map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 3, result["count"])
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer

	out := NewOutput(&buf, "json")
	_, ok := out.(*JSONOutput)
	assert.True(t, ok, "format json should select JSONOutput")

	out = NewOutput(&buf, "text")
	_, ok = out.(*TTYOutput)
	assert.True(t, ok, "format text should select TTYOutput")
}
