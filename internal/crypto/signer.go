// Package crypto implements the signing core behind the text command:
// a uniform sign/verify/generate abstraction over two unrelated schemes,
// the BLAKE3 keyed hash (symmetric) and Ed25519 (asymmetric).
//
// Callers pick a scheme with an Algorithm tag and go through the
// orchestration functions in text.go; the concrete types Blake3,
// Ed25519Signer, and Ed25519Verifier are exported for callers that hold
// key material directly. A failed verification is a first-class false
// result, never an error. Errors are reserved for I/O failures and
// malformed key or signature material.
package crypto

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidAlgorithm is returned when an algorithm tag is not recognized.
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

	// ErrInvalidKeySize is returned when loaded key material has the wrong length.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidSignatureSize is returned when a signature has the wrong
	// byte length for the scheme. This is a hard error, distinct from a
	// false verification result.
	ErrInvalidSignatureSize = errors.New("invalid signature size")

	// ErrInvalidSignatureEncoding is returned when signature text is not
	// valid URL-safe base64.
	ErrInvalidSignatureEncoding = errors.New("invalid signature encoding")
)

// Algorithm selects the signing scheme.
type Algorithm string

// Supported algorithms.
const (
	// AlgorithmBlake3 is the symmetric BLAKE3 keyed-hash scheme: one shared
	// 32-byte key both signs and verifies.
	AlgorithmBlake3 Algorithm = "blake3"

	// AlgorithmEd25519 is the asymmetric Ed25519 scheme: a secret key signs,
	// a separate public key verifies.
	AlgorithmEd25519 Algorithm = "ed25519"
)

// ParseAlgorithm converts a user-supplied tag into an Algorithm.
// Matching is case-insensitive; anything but the two known tags is rejected.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case string(AlgorithmBlake3):
		return AlgorithmBlake3, nil
	case string(AlgorithmEd25519):
		return AlgorithmEd25519, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, s)
	}
}

// String returns the canonical lowercase tag.
func (a Algorithm) String() string {
	return string(a)
}

// Symmetric indicates whether the same key file is used to sign and verify.
func (a Algorithm) Symmetric() bool {
	return a == AlgorithmBlake3
}

// Signer produces a signature over an input stream.
// Implementations fully consume the reader before returning.
type Signer interface {
	// Sign signs the stream contents and returns the raw signature bytes.
	Sign(ctx context.Context, r io.Reader) ([]byte, error)
}

// Verifier checks a signature over an input stream.
type Verifier interface {
	// Verify reports whether sig is valid for the stream contents.
	// A mismatch yields (false, nil); an error is returned only for read
	// failures or a signature of the wrong byte length.
	Verify(ctx context.Context, r io.Reader, sig []byte) (bool, error)
}
