// Package auth implements the authentication and authorization core:
// password hashing, access token issuance and verification, policy-based
// authorization and bearer-token session resolution.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnrecognizedHash is returned by VerifyPassword when the stored digest
// is not a bcrypt digest this service could have produced. It signals
// stored-data corruption and must not be treated as a wrong password.
var ErrUnrecognizedHash = errors.New("unrecognized password digest")

// HashPassword returns a bcrypt digest using the given cost. The digest is
// self-describing: it embeds the algorithm version, cost and salt.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt
// digest. It returns (false, nil) on a mismatch and a wrapped
// ErrUnrecognizedHash when the digest cannot be parsed as bcrypt output, so
// callers can tell a wrong password from a corrupt or foreign hash.
func VerifyPassword(plain, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrUnrecognizedHash, err)
	}
}
