// Package genpass generates random passwords from a character-class policy.
//
// The alphabets deliberately exclude easily confused characters (I, O, l,
// o, 0) so generated passwords survive being read aloud or retyped. Every
// enabled class is guaranteed at least one character in the result; the
// remaining positions are drawn from the union of the enabled classes and
// the final string is shuffled so class positions are not predictable.
//
// All randomness comes from crypto/rand. Generated passwords double as
// symmetric key material, so a math/rand fallback is never acceptable here.
package genpass

import (
	"crypto/rand"
	"math/big"

	"github.com/sigilhq/sigil/internal/errors"
)

// Character classes. Confusable characters are excluded on purpose:
// no I/O in upper, no l/o in lower, no 0 in digits.
const (
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerChars  = "abcdefghijkmnpqrstuvwxyz"
	digitChars  = "123456789"
	symbolChars = "!@#$%^&*_"
)

// DefaultLength is the password length used when none is configured.
const DefaultLength = 16

// Policy controls which character classes participate and the total length.
type Policy struct {
	Length  int
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// DefaultPolicy returns the policy used by the genpass command when no
// flags or configuration override it: every class enabled at DefaultLength.
func DefaultPolicy() Policy {
	return Policy{
		Length:  DefaultLength,
		Upper:   true,
		Lower:   true,
		Digits:  true,
		Symbols: true,
	}
}

// classes returns the alphabet of each enabled class.
func (p Policy) classes() []string {
	var out []string
	if p.Upper {
		out = append(out, upperChars)
	}
	if p.Lower {
		out = append(out, lowerChars)
	}
	if p.Digits {
		out = append(out, digitChars)
	}
	if p.Symbols {
		out = append(out, symbolChars)
	}
	return out
}

// Validate checks that the policy can produce a password: at least one
// class enabled, and a length that fits one character per enabled class.
func (p Policy) Validate() error {
	classes := p.classes()
	if len(classes) == 0 {
		return errors.Wrap(errors.ErrInvalidArgument, "at least one character class must be enabled")
	}
	if p.Length < len(classes) {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"length %d cannot fit one character from each of %d enabled classes", p.Length, len(classes))
	}
	return nil
}

// Generate produces a password satisfying the policy.
func Generate(p Policy) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	classes := p.classes()
	pool := ""
	password := make([]byte, 0, p.Length)

	// One guaranteed character per enabled class.
	for _, class := range classes {
		pool += class
		c, err := pickByte(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fill the rest from the combined pool.
	for len(password) < p.Length {
		c, err := pickByte(pool)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

// pickByte selects one byte from alphabet uniformly at random.
func pickByte(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, errors.Wrap(err, "failed to read random bytes")
	}
	return alphabet[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return errors.Wrap(err, "failed to read random bytes")
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
