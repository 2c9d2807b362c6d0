package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iliyamo/mangify/internal/auth"
	"github.com/iliyamo/mangify/internal/config"
	"github.com/iliyamo/mangify/internal/middleware"
	"github.com/iliyamo/mangify/internal/model"
	"github.com/iliyamo/mangify/internal/queue"
	"github.com/iliyamo/mangify/internal/repository"
)

// UserHandler bundles dependencies for the account endpoints. Mutations on
// existing accounts run behind the Auth middleware and are gated by the
// authorization engine; registration and reads are public.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Authz *auth.Authorizer
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo, authz *auth.Authorizer) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Authz: authz}
}

type createUserReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type updateUserReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

// Show handles GET /users/:id.
func (h *UserHandler) Show(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Usuário não encontrado"})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": u})
}

// Create handles POST /users. Registration is open and always produces a
// reader; the admin role is never self-assignable.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Corpo da requisição inválido"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Username e senha são obrigatórios"})
	}

	digest, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return internalError(c)
	}

	now := time.Now().UTC()
	u := model.User{
		ID:        ulid.Make().String(),
		Username:  req.Username,
		Password:  digest,
		Role:      model.RoleReader,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "Username não esta disponível!"})
		}
		return internalError(c)
	}

	queue.Emit(queue.NewAuditEvent(queue.EntityUser, u.ID, queue.ActionCreated, ""))
	return c.JSON(http.StatusCreated, echo.Map{"message": "Usuário criado!"})
}

// Update handles PUT /users/:id. The caller may change their own username
// or password; admins may change anyone's. The new password is compared
// against the stored digest and rejected when identical, but the current
// password is not re-verified before the change.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Corpo da requisição inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Usuário não encontrado!"})
		}
		return internalError(c)
	}

	if err := h.Authz.Authorize(middleware.CurrentUser(c), stored, "update", "user"); err != nil {
		return authorizationError(c, err)
	}

	if req.Password != nil {
		same, err := auth.VerifyPassword(*req.Password, stored.Password)
		if err != nil {
			log.Printf("users: stored digest for %s unreadable: %v", stored.ID, err)
			return internalError(c)
		}
		if same {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "A nova senha não pode ser igual a senha atual!"})
		}
	}

	changed := req.Password != nil ||
		(req.Username != nil && *req.Username != stored.Username)
	if !changed {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Nada a ser atualizado!"})
	}

	patch := bson.M{"updated_at": time.Now().UTC()}
	if req.Username != nil {
		patch["username"] = *req.Username
	}
	if req.Password != nil {
		digest, err := auth.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return internalError(c)
		}
		patch["password"] = digest
	}

	if err := h.Users.Update(ctx, stored.ID, patch); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "Username não esta disponível!"})
		}
		return internalError(c)
	}

	queue.Emit(queue.NewAuditEvent(queue.EntityUser, stored.ID, queue.ActionUpdated, middleware.CurrentUser(c).ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Usuário atualizado!"})
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Usuário não encontrado!"})
		}
		return internalError(c)
	}

	if err := h.Authz.Authorize(middleware.CurrentUser(c), stored, "delete", "user"); err != nil {
		return authorizationError(c, err)
	}

	if err := h.Users.Delete(ctx, stored.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Usuário não encontrado!"})
		}
		return internalError(c)
	}

	queue.Emit(queue.NewAuditEvent(queue.EntityUser, stored.ID, queue.ActionDeleted, middleware.CurrentUser(c).ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Usuário deletado!"})
}

// authorizationError translates a failed policy check into the HTTP
// response: denial is a 403 with a generic message, anything else is an
// internal error.
func authorizationError(c echo.Context, err error) error {
	if errors.Is(err, auth.ErrForbidden) {
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "Ação não autorizada"})
	}
	log.Printf("authz: check failed: %v", err)
	return internalError(c)
}
