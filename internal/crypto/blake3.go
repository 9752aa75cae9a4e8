package crypto

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"os"

	"lukechampine.com/blake3"

	"github.com/sigilhq/sigil/internal/genpass"
)

// Sizes of the BLAKE3 keyed-hash scheme.
const (
	// Blake3KeySize is the exact key length the keyed hash accepts.
	Blake3KeySize = 32

	// Blake3SignatureSize is the digest length. The digest is the signature.
	Blake3SignatureSize = 32
)

// Blake3 signs and verifies with the BLAKE3 keyed hash. The scheme is
// symmetric: whoever holds the key can produce and check signatures, so
// a Blake3 value is both a Signer and a Verifier.
type Blake3 struct {
	key [Blake3KeySize]byte
}

// NewBlake3 constructs a signer from raw key material.
//
// Keys shorter than Blake3KeySize are rejected. Longer input is silently
// truncated to the first Blake3KeySize bytes: key files written as
// passwords tend to carry a trailing newline or extra characters, and
// those files must keep verifying. Do not rely on bytes past the first 32
// carrying any meaning.
func NewBlake3(key []byte) (*Blake3, error) {
	if len(key) < Blake3KeySize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrInvalidKeySize, Blake3KeySize, len(key))
	}
	var b Blake3
	copy(b.key[:], key[:Blake3KeySize])
	return &b, nil
}

// LoadBlake3 reads raw key material from path and constructs a signer.
func LoadBlake3(path string) (*Blake3, error) {
	key, err := os.ReadFile(path) //nolint:gosec // Path comes from a user-supplied flag
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return NewBlake3(key)
}

// Sign computes the keyed hash of the stream. The 32-byte digest is the
// signature.
func (b *Blake3) Sign(_ context.Context, r io.Reader) ([]byte, error) {
	h := blake3.New(Blake3SignatureSize, b.key[:])
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	return h.Sum(nil), nil
}

// Verify recomputes the keyed hash and compares it against sig in constant
// time. A digest mismatch is (false, nil); a signature that is not exactly
// Blake3SignatureSize bytes is a hard error.
func (b *Blake3) Verify(ctx context.Context, r io.Reader, sig []byte) (bool, error) {
	if len(sig) != Blake3SignatureSize {
		return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignatureSize, Blake3SignatureSize, len(sig))
	}
	computed, err := b.Sign(ctx, r)
	if err != nil {
		return false, err
	}
	// Constant-time compare: this is a MAC check, and early-exit comparison
	// timing can leak how much of a forged tag matches.
	return subtle.ConstantTimeCompare(computed, sig) == 1, nil
}

// generateBlake3 derives a fresh 32-byte key from the password generator
// with every character class enabled. The password's raw bytes are the
// key, which ties key entropy to the generator's alphabet policy.
func generateBlake3() ([][]byte, error) {
	password, err := genpass.Generate(genpass.Policy{
		Length:  Blake3KeySize,
		Upper:   true,
		Lower:   true,
		Digits:  true,
		Symbols: true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating key material: %w", err)
	}
	return [][]byte{[]byte(password)}, nil
}
