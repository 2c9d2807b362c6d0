package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/mangify/internal/model"
	"github.com/iliyamo/mangify/internal/repository"
)

// memStore is an in-memory SubjectStore for tests.
type memStore map[string]model.User

func (s memStore) GetByID(_ context.Context, id string) (model.User, error) {
	u, ok := s[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func TestResolveReturnsStoredSubject(t *testing.T) {
	codec := newTestCodec(t)
	alice := model.User{ID: "01H1VEC8S1T0000000000000AB", Username: "alice", Role: model.RoleReader}
	resolver := NewSessionResolver(codec, memStore{alice.ID: alice})

	now := time.Now().UTC()
	token, err := codec.Issue(alice.ID, now)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), token, now)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestResolveDeletedSubject(t *testing.T) {
	codec := newTestCodec(t)
	resolver := NewSessionResolver(codec, memStore{})

	now := time.Now().UTC()
	token, err := codec.Issue("01H1VEC8S1T0000000000000AB", now)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), token, now)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveMalformedToken(t *testing.T) {
	codec := newTestCodec(t)
	resolver := NewSessionResolver(codec, memStore{})

	_, err := resolver.Resolve(context.Background(), "garbage", time.Now().UTC())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveExpiredToken(t *testing.T) {
	codec := newTestCodec(t)
	alice := model.User{ID: "01H1VEC8S1T0000000000000AB", Username: "alice"}
	resolver := NewSessionResolver(codec, memStore{alice.ID: alice})

	issued := time.Date(2023, 7, 14, 12, 0, 0, 0, time.UTC)
	token, err := codec.Issue(alice.ID, issued)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), token, issued.Add(31*time.Minute))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

// A deleted subject and a malformed token must be indistinguishable to the
// caller.
func TestResolveFailureShapeUniform(t *testing.T) {
	codec := newTestCodec(t)
	resolver := NewSessionResolver(codec, memStore{})

	now := time.Now().UTC()
	token, err := codec.Issue("gone", now)
	require.NoError(t, err)

	_, errDeleted := resolver.Resolve(context.Background(), token, now)
	_, errMalformed := resolver.Resolve(context.Background(), "garbage", now)
	assert.Equal(t, errMalformed, errDeleted)
}
