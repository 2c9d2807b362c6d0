// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mangify/internal/handler"
)

// Register wires every route of the service onto the provided Echo
// instance. authMW must validate a bearer token and inject the subject into
// the context; cacheMW may serve catalog reads from the response cache.
// Registration and all catalog operations are public, matching the service
// contract; only token refresh, the identity endpoint and mutations of
// existing accounts require authentication.
func Register(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, m *handler.MangaHandler, authMW, cacheMW echo.MiddlewareFunc) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)

	auth := e.Group("/auth")
	auth.POST("/token", a.Token)
	auth.POST("/refresh", a.Refresh, authMW)
	auth.GET("/me", a.Me, authMW)

	users := e.Group("/users")
	users.GET("", u.List)
	users.GET("/:id", u.Show)
	users.POST("", u.Create)
	users.PUT("/:id", u.Update, authMW)
	users.DELETE("/:id", u.Delete, authMW)

	mangas := e.Group("/mangas")
	mangas.GET("", m.List, cacheMW)
	mangas.GET("/:id", m.Show, cacheMW)
	mangas.POST("", m.Create)
	mangas.PUT("/:id", m.Update)
	mangas.DELETE("/:id", m.Delete)
}
