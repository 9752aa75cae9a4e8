package crypto

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/sigilhq/sigil/internal/constants"
)

// EncodeSignature renders raw signature bytes as URL-safe base64 without
// padding, so the result can sit in a URL or shell argument unescaped.
func EncodeSignature(sig []byte) string {
	return base64.RawURLEncoding.EncodeToString(sig)
}

// DecodeSignature parses signature text produced by EncodeSignature.
// Surrounding whitespace is trimmed first so signatures that picked up a
// trailing newline from a file or pipe still decode. Invalid base64 is a
// hard error, distinct from a false verification result.
func DecodeSignature(text string) ([]byte, error) {
	sig, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignatureEncoding, err)
	}
	return sig, nil
}

// SignText loads the key for alg from keyPath, signs the stream, and
// returns the printable signature text.
func SignText(ctx context.Context, r io.Reader, keyPath string, alg Algorithm) (string, error) {
	var signer Signer
	switch alg {
	case AlgorithmBlake3:
		s, err := LoadBlake3(keyPath)
		if err != nil {
			return "", err
		}
		signer = s
	case AlgorithmEd25519:
		s, err := LoadEd25519Signer(keyPath)
		if err != nil {
			return "", err
		}
		signer = s
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, alg)
	}

	sig, err := signer.Sign(ctx, r)
	if err != nil {
		return "", err
	}
	return EncodeSignature(sig), nil
}

// VerifyText checks sigText against the stream using the key for alg at
// keyPath. For the symmetric scheme keyPath names the shared key; for the
// asymmetric scheme it names the public key. The boolean is the verdict;
// errors mean the check could not be performed at all.
func VerifyText(ctx context.Context, r io.Reader, keyPath string, alg Algorithm, sigText string) (bool, error) {
	sig, err := DecodeSignature(sigText)
	if err != nil {
		return false, err
	}

	var verifier Verifier
	switch alg {
	case AlgorithmBlake3:
		v, err := LoadBlake3(keyPath)
		if err != nil {
			return false, err
		}
		verifier = v
	case AlgorithmEd25519:
		v, err := LoadEd25519Verifier(keyPath)
		if err != nil {
			return false, err
		}
		verifier = v
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, alg)
	}

	return verifier.Verify(ctx, r, sig)
}

// GenerateKeys produces fresh key material for alg. The symmetric scheme
// returns one buffer (the shared secret); the asymmetric scheme returns
// two, secret first and public second. Buffer order matches KeyFileNames.
func GenerateKeys(alg Algorithm) ([][]byte, error) {
	switch alg {
	case AlgorithmBlake3:
		return generateBlake3()
	case AlgorithmEd25519:
		return generateEd25519()
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, alg)
	}
}

// KeyFileNames returns the file names generated key buffers are persisted
// under, in the same order GenerateKeys returns them.
func KeyFileNames(alg Algorithm) ([]string, error) {
	switch alg {
	case AlgorithmBlake3:
		return []string{constants.Blake3KeyFileName}, nil
	case AlgorithmEd25519:
		return []string{constants.Ed25519SecretFileName, constants.Ed25519PublicFileName}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, alg)
	}
}
