package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret, "HS256", 30*time.Minute)
	require.NoError(t, err)
	return codec
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Date(2023, 7, 14, 12, 0, 0, 0, time.UTC)

	token, err := codec.Issue("01H1VEC8S1T0000000000000AB", now)
	require.NoError(t, err)

	sub, err := codec.Decode(token, now)
	require.NoError(t, err)
	assert.Equal(t, "01H1VEC8S1T0000000000000AB", sub)
}

func TestDecodeExpired(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Date(2023, 7, 14, 12, 0, 0, 0, time.UTC)

	token, err := codec.Issue("subject", now)
	require.NoError(t, err)

	// still valid right at the TTL boundary minus a second
	_, err = codec.Decode(token, now.Add(codec.TTL()-time.Second))
	require.NoError(t, err)

	_, err = codec.Decode(token, now.Add(codec.TTL()+time.Second))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeTamperedSignature(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now().UTC()
	token, err := codec.Issue("subject", now)
	require.NoError(t, err)

	// Flip a character in the middle of the signature segment. The final
	// character only contributes padding bits that a lenient base64
	// decoder ignores, so tampering there would go unnoticed.
	dot := strings.LastIndex(token, ".")
	require.Greater(t, dot, 0)
	flipped := []byte(token)
	mid := dot + 1 + (len(token)-dot-1)/2
	if flipped[mid] == 'A' {
		flipped[mid] = 'B'
	} else {
		flipped[mid] = 'A'
	}
	require.NotEqual(t, token, string(flipped))

	_, err = codec.Decode(string(flipped), now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeNonCanonicalEncoding(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now().UTC()
	token, err := codec.Issue("subject", now)
	require.NoError(t, err)

	// An HS256 signature is 32 bytes, so the 43-character base64url
	// segment leaves two unused bits in its final character. Toggling the
	// lowest of them decodes to identical bytes; strict decoding must
	// reject the altered token anyway.
	const b64url = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	flipped := []byte(token)
	last := len(flipped) - 1
	idx := strings.IndexByte(b64url, flipped[last])
	require.GreaterOrEqual(t, idx, 0)
	flipped[last] = b64url[idx^1]

	_, err = codec.Decode(string(flipped), now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeGarbage(t *testing.T) {
	codec := newTestCodec(t)
	_, err := codec.Decode("not-a-token", time.Now().UTC())
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeWrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewTokenCodec("another-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	token, err := other.Issue("subject", time.Now().UTC())
	require.NoError(t, err)

	_, err = codec.Decode(token, time.Now().UTC())
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeMissingSubject(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now().UTC()

	claims := jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.Decode(token, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewTokenCodecUnknownAlgorithm(t *testing.T) {
	_, err := NewTokenCodec(testSecret, "HS9000", time.Minute)
	assert.Error(t, err)
}
