package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Both map to the same unauthorized outcome at
// the HTTP boundary; they stay distinct here so callers can log the cause.
var (
	// ErrTokenInvalid covers a bad signature, an unparsable payload and a
	// missing subject claim.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the verification instant is past the
	// embedded expiration claim.
	ErrTokenExpired = errors.New("expired token")
)

// TokenCodec issues and verifies signed, expiring access tokens. Tokens are
// stateless: nothing is stored server-side and there is no revocation.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenCodec builds a codec for the given symmetric secret, signing
// algorithm name (e.g. "HS256") and token time-to-live. An unknown
// algorithm name is a configuration error.
func NewTokenCodec(secret, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	return &TokenCodec{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (tc *TokenCodec) TTL() time.Duration { return tc.ttl }

// Issue signs a token carrying the subject id and an expiration instant of
// now plus the configured TTL.
func (tc *TokenCodec) Issue(subjectID string, now time.Time) (string, error) {
	now = now.UTC()
	claims := jwt.MapClaims{
		"sub": subjectID,
		"exp": now.Add(tc.ttl).Unix(),
		"iat": now.Unix(),
	}
	return jwt.NewWithClaims(tc.method, claims).SignedString(tc.secret)
}

// Decode verifies the signature and expiration of a token as of the given
// instant and returns the embedded subject id. It fails with
// ErrTokenExpired past the expiration claim and ErrTokenInvalid for any
// other defect, including an absent subject claim.
func (tc *TokenCodec) Decode(token string, now time.Time) (string, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (interface{}, error) { return tc.secret, nil },
		jwt.WithValidMethods([]string{tc.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
