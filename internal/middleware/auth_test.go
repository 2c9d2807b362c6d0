package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/mangify/internal/auth"
	"github.com/iliyamo/mangify/internal/model"
	"github.com/iliyamo/mangify/internal/repository"
)

type stubStore map[string]model.User

func (s stubStore) GetByID(_ context.Context, id string) (model.User, error) {
	u, ok := s[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func setup(t *testing.T, ttl time.Duration) (*auth.TokenCodec, echo.HandlerFunc, model.User) {
	t.Helper()
	codec, err := auth.NewTokenCodec("test-secret", "HS256", ttl)
	require.NoError(t, err)

	alice := model.User{ID: "01H1VEC8S1T0000000000000AB", Username: "alice", Role: model.RoleReader}
	resolver := auth.NewSessionResolver(codec, stubStore{alice.ID: alice})

	handler := Auth(resolver)(func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).Username)
	})
	return codec, handler, alice
}

func perform(handler echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestAuthMissingHeader(t *testing.T) {
	_, handler, _ := setup(t, 30*time.Minute)

	rec := perform(handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.JSONEq(t, `{"detail":"Não foi possível validar as credenciais"}`, rec.Body.String())
}

func TestAuthValidToken(t *testing.T) {
	codec, handler, alice := setup(t, 30*time.Minute)
	token, err := codec.Issue(alice.ID, time.Now().UTC())
	require.NoError(t, err)

	rec := perform(handler, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthExpiredToken(t *testing.T) {
	codec, handler, alice := setup(t, time.Nanosecond)
	token, err := codec.Issue(alice.ID, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)

	rec := perform(handler, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Não foi possível validar as credenciais"}`, rec.Body.String())
}

func TestAuthUnknownSubject(t *testing.T) {
	codec, handler, _ := setup(t, 30*time.Minute)
	token, err := codec.Issue("01H1VEC8S1T0000000000000ZZ", time.Now().UTC())
	require.NoError(t, err)

	rec := perform(handler, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCurrentUserWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, model.User{}, CurrentUser(c))
}
