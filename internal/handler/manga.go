package handler

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iliyamo/mangify/internal/config"
	"github.com/iliyamo/mangify/internal/middleware"
	"github.com/iliyamo/mangify/internal/model"
	"github.com/iliyamo/mangify/internal/queue"
	"github.com/iliyamo/mangify/internal/repository"
)

// MangaHandler bundles dependencies for the catalog endpoints. Reads may be
// served from the response cache; every successful mutation invalidates the
// cache prefix and emits an audit event.
type MangaHandler struct {
	Mangas   *repository.MangaRepo
	Cache    *redis.Client
	CacheCfg config.CacheConfig
}

func NewMangaHandler(mangas *repository.MangaRepo, cache *redis.Client, cacheCfg config.CacheConfig) *MangaHandler {
	return &MangaHandler{Mangas: mangas, Cache: cache, CacheCfg: cacheCfg}
}

type createMangaReq struct {
	Title                  string   `json:"title"`
	AlternativesTitles     []string `json:"alternativesTitles"`
	Description            *string  `json:"description"`
	OriginalLanguage       string   `json:"originalLanguage"`
	PublicationDemographic *string  `json:"publicationDemographic"`
	Status                 string   `json:"status"`
	Year                   *int     `json:"year"`
	ContentRating          string   `json:"contentRating"`
	State                  string   `json:"state"`
}

type updateMangaReq struct {
	Title                  *string  `json:"title"`
	AlternativesTitles     []string `json:"alternativesTitles"`
	Description            *string  `json:"description"`
	OriginalLanguage       *string  `json:"originalLanguage"`
	PublicationDemographic *string  `json:"publicationDemographic"`
	Status                 *string  `json:"status"`
	Year                   *int     `json:"year"`
	ContentRating          *string  `json:"contentRating"`
	State                  *string  `json:"state"`
}

// List handles GET /mangas.
func (h *MangaHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	mangas, err := h.Mangas.List(ctx)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": mangas})
}

// Show handles GET /mangas/:id.
func (h *MangaHandler) Show(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Mangas.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Manga não encontrado"})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": m})
}

// Create handles POST /mangas.
func (h *MangaHandler) Create(c echo.Context) error {
	var req createMangaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Corpo da requisição inválido"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Título é obrigatório"})
	}
	if req.State == "" {
		req.State = model.StateDraft
	}
	if detail, ok := validateMangaFields(&req.OriginalLanguage, req.PublicationDemographic, &req.Status, req.Year, &req.ContentRating, &req.State); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": detail})
	}
	if req.AlternativesTitles == nil {
		req.AlternativesTitles = []string{}
	}

	now := time.Now().UTC()
	m := model.Manga{
		ID:                     ulid.Make().String(),
		Title:                  req.Title,
		AlternativesTitles:     req.AlternativesTitles,
		Description:            req.Description,
		OriginalLanguage:       req.OriginalLanguage,
		PublicationDemographic: req.PublicationDemographic,
		Status:                 req.Status,
		Year:                   req.Year,
		ContentRating:          req.ContentRating,
		State:                  req.State,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Mangas.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "Manga com esse título já existe!"})
		}
		return internalError(c)
	}

	h.afterMutation(c, m.ID, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Manga criado"})
}

// Update handles PUT /mangas/:id. Only provided fields are patched; a
// request that changes nothing is rejected.
func (h *MangaHandler) Update(c echo.Context) error {
	var req updateMangaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Corpo da requisição inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Mangas.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Manga não encontrado"})
		}
		return internalError(c)
	}

	if detail, ok := validateMangaFields(req.OriginalLanguage, req.PublicationDemographic, req.Status, req.Year, req.ContentRating, req.State); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": detail})
	}

	patch := bson.M{}
	if req.Title != nil && *req.Title != stored.Title {
		patch["title"] = *req.Title
	}
	if req.AlternativesTitles != nil && !slices.Equal(req.AlternativesTitles, stored.AlternativesTitles) {
		patch["alternatives_titles"] = req.AlternativesTitles
	}
	if req.Description != nil && !equalPtr(req.Description, stored.Description) {
		patch["description"] = *req.Description
	}
	if req.OriginalLanguage != nil && *req.OriginalLanguage != stored.OriginalLanguage {
		patch["original_language"] = *req.OriginalLanguage
	}
	if req.PublicationDemographic != nil && !equalPtr(req.PublicationDemographic, stored.PublicationDemographic) {
		patch["publication_demographic"] = *req.PublicationDemographic
	}
	if req.Status != nil && *req.Status != stored.Status {
		patch["status"] = *req.Status
	}
	if req.Year != nil && !equalPtr(req.Year, stored.Year) {
		patch["year"] = *req.Year
	}
	if req.ContentRating != nil && *req.ContentRating != stored.ContentRating {
		patch["content_rating"] = *req.ContentRating
	}
	if req.State != nil && *req.State != stored.State {
		patch["state"] = *req.State
	}
	if len(patch) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Nada a ser atualizado!"})
	}
	patch["updated_at"] = time.Now().UTC()

	if err := h.Mangas.Update(ctx, stored.ID, patch); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "Manga com esse título já existe!"})
		}
		return internalError(c)
	}

	h.afterMutation(c, stored.ID, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Manga atualizado"})
}

// Delete handles DELETE /mangas/:id.
func (h *MangaHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if err := h.Mangas.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Manga não encontrado!"})
		}
		return internalError(c)
	}

	h.afterMutation(c, id, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "Manga deletado"})
}

func (h *MangaHandler) afterMutation(c echo.Context, id, action string) {
	middleware.InvalidateCache(c.Request().Context(), h.Cache, h.CacheCfg.Prefix)
	queue.Emit(queue.NewAuditEvent(queue.EntityManga, id, action, middleware.CurrentUser(c).ID))
}

// validateMangaFields checks the enum-like fields shared by create and
// update requests. Nil pointers mean the field was not provided.
func validateMangaFields(lang, demographic, status *string, year *int, rating, state *string) (string, bool) {
	if lang != nil && !model.ValidLanguage(*lang) {
		return "Idioma original deve ser um código de duas letras minúsculas", false
	}
	if demographic != nil && !model.ValidDemographic(*demographic) {
		return "Demografia de publicação inválida", false
	}
	if status != nil && !model.ValidStatus(*status) {
		return "Status inválido", false
	}
	if year != nil && !model.ValidYear(*year) {
		return "Ano deve ser maior ou igual a 1900", false
	}
	if rating != nil && !model.ValidContentRating(*rating) {
		return "Classificação de conteúdo inválida", false
	}
	if state != nil && !model.ValidState(*state) {
		return "Estado inválido", false
	}
	return "", true
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
