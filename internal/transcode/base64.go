// Package transcode implements the base64 encode/decode operations behind
// the base64 command.
package transcode

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/sigilhq/sigil/internal/errors"
)

// Encoding selects the base64 alphabet and padding rules.
type Encoding string

// Supported encodings. Standard is the padded RFC 4648 alphabet; URLSafe
// is the URL alphabet without padding, matching signature text encoding.
const (
	EncodingStandard Encoding = "standard"
	EncodingURLSafe  Encoding = "urlsafe"
)

// ParseEncoding converts a user-supplied name into an Encoding.
// Matching is case-insensitive.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case string(EncodingStandard):
		return EncodingStandard, nil
	case string(EncodingURLSafe):
		return EncodingURLSafe, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidArgument, "unknown base64 format %q", s)
	}
}

// String returns the canonical name of the encoding.
func (e Encoding) String() string {
	return string(e)
}

func (e Encoding) codec() *base64.Encoding {
	if e == EncodingURLSafe {
		return base64.RawURLEncoding
	}
	return base64.StdEncoding
}

// Encode reads r fully and returns its base64 representation.
func Encode(r io.Reader, enc Encoding) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return enc.codec().EncodeToString(data), nil
}

// Decode reads base64 text from r and returns the decoded bytes.
// Surrounding whitespace is ignored so piped input with a trailing
// newline decodes cleanly.
func Decode(r io.Reader, enc Encoding) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	text := strings.TrimSpace(string(data))
	decoded, err := enc.codec().DecodeString(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64 input")
	}
	return decoded, nil
}
