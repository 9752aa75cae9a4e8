package crypto

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"io"
	"os"
)

// randReader overrides the entropy source for key generation.
// nil selects crypto/rand. Tests substitute a deterministic reader;
// production code must leave this untouched.
var randReader io.Reader

// Ed25519Signer signs with an Ed25519 secret key.
type Ed25519Signer struct {
	key ed25519.PrivateKey
}

// NewEd25519Signer constructs a signer from a raw 32-byte seed, the
// RFC 8032 private key representation that generated key files use.
// Any other length is a hard error; secret key material is never truncated.
func NewEd25519Signer(seed []byte) (*Ed25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: expected %d-byte ed25519 seed, got %d", ErrInvalidKeySize, ed25519.SeedSize, len(seed))
	}
	return &Ed25519Signer{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// LoadEd25519Signer reads a raw seed file from path and constructs a signer.
func LoadEd25519Signer(path string) (*Ed25519Signer, error) {
	seed, err := os.ReadFile(path) //nolint:gosec // Path comes from a user-supplied flag
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return NewEd25519Signer(seed)
}

// Sign buffers the stream and signs it. Ed25519 needs the whole message
// before it can produce the 64-byte signature.
func (s *Ed25519Signer) Sign(_ context.Context, r io.Reader) ([]byte, error) {
	msg, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	return ed25519.Sign(s.key, msg), nil
}

// Ed25519Verifier checks signatures with an Ed25519 public key. The
// public half loads independently of the secret: verifiers never need
// secret material.
type Ed25519Verifier struct {
	key ed25519.PublicKey
}

// NewEd25519Verifier constructs a verifier from a raw 32-byte public key.
func NewEd25519Verifier(key []byte) (*Ed25519Verifier, error) {
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: expected %d-byte ed25519 public key, got %d", ErrInvalidKeySize, ed25519.PublicKeySize, len(key))
	}
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, key)
	return &Ed25519Verifier{key: pub}, nil
}

// LoadEd25519Verifier reads a raw public key file from path and constructs
// a verifier.
func LoadEd25519Verifier(path string) (*Ed25519Verifier, error) {
	key, err := os.ReadFile(path) //nolint:gosec // Path comes from a user-supplied flag
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return NewEd25519Verifier(key)
}

// Verify buffers the stream and checks sig against it. A signature that is
// not exactly 64 bytes fails parsing, which is a hard error; once the
// length is right the result is a plain boolean with no further error cases.
func (v *Ed25519Verifier) Verify(_ context.Context, r io.Reader, sig []byte) (bool, error) {
	if len(sig) != ed25519.SignatureSize {
		return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignatureSize, ed25519.SignatureSize, len(sig))
	}
	msg, err := io.ReadAll(r)
	if err != nil {
		return false, fmt.Errorf("reading message: %w", err)
	}
	return ed25519.Verify(v.key, msg, sig), nil
}

// generateEd25519 produces a fresh key pair from the configured entropy
// source and returns [seed, public] in that order. The order is part of
// the contract: callers persist the buffers under distinct file names.
func generateEd25519() ([][]byte, error) {
	pub, priv, err := ed25519.GenerateKey(randReader)
	if err != nil {
		return nil, fmt.Errorf("generating ed25519 key: %w", err)
	}
	return [][]byte{priv.Seed(), pub}, nil
}
