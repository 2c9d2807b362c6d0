package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mangify/internal/auth"
	"github.com/iliyamo/mangify/internal/middleware"
	"github.com/iliyamo/mangify/internal/repository"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Users *repository.UserRepo
	Codec *auth.TokenCodec
}

func NewAuthHandler(users *repository.UserRepo, codec *auth.TokenCodec) *AuthHandler {
	return &AuthHandler{Users: users, Codec: codec}
}

type tokenResp struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// Token handles POST /auth/token. Credentials arrive as form fields
// (username, password). An unknown username and a wrong password produce
// the same 401 body.
func (h *AuthHandler) Token(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return badCredentials(c)
		}
		return internalError(c)
	}

	ok, err := auth.VerifyPassword(password, u.Password)
	if err != nil {
		// A digest we cannot parse means the stored record is corrupt,
		// not that the caller got the password wrong.
		log.Printf("auth: stored digest for user %s unreadable: %v", u.ID, err)
		return internalError(c)
	}
	if !ok {
		return badCredentials(c)
	}

	token, err := h.Codec.Issue(u.ID, time.Now().UTC())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: token, TokenType: "bearer"})
}

// Refresh handles POST /auth/refresh. It runs behind the Auth middleware,
// so the presented token has already been validated and its subject loaded.
// The previous token stays valid until its own expiration.
func (h *AuthHandler) Refresh(c echo.Context) error {
	u := middleware.CurrentUser(c)
	token, err := h.Codec.Issue(u.ID, time.Now().UTC())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /auth/me and returns the authenticated subject's public
// fields. The password digest is excluded by the model's JSON tags.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": middleware.CurrentUser(c)})
}

func badCredentials(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Nome de usuário ou senha incorretos"})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Erro interno do servidor"})
}
