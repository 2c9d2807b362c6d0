// Package middleware provides reusable HTTP middleware for the API.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mangify/internal/auth"
	"github.com/iliyamo/mangify/internal/model"
)

// currentUserKey is the context key under which the resolved subject is
// stored for downstream handlers.
const currentUserKey = "current_user"

// detailUnauthorized is the uniform body for every authentication failure.
const detailUnauthorized = "Não foi possível validar as credenciais"

// Auth returns an Echo middleware that validates a Bearer access token and
// injects the authenticated subject's stored record into the request
// context. Handlers behind it read the subject via CurrentUser. Any missing,
// malformed or expired token, and any token whose subject was deleted,
// produces the same 401 response.
func Auth(resolver *auth.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c)
			}
			token := strings.TrimPrefix(header, "Bearer ")

			u, err := resolver.Resolve(c.Request().Context(), token, time.Now().UTC())
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					return unauthorized(c)
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Erro interno do servidor"})
			}
			c.Set(currentUserKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the subject stored by Auth. The zero User is returned
// when the route is not behind the Auth middleware.
func CurrentUser(c echo.Context) model.User {
	u, _ := c.Get(currentUserKey).(model.User)
	return u
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"detail": detailUnauthorized})
}
