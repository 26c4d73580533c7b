package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myfolio/server/internal/apperr"
	"github.com/myfolio/server/internal/auth"
	"github.com/myfolio/server/internal/config"
	"github.com/myfolio/server/internal/db"
	"github.com/myfolio/server/internal/models"
)

// UsersStore is the slice of the users repository the handlers need.
type UsersStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

type TemplatesStore interface {
	Create(ctx context.Context, tpl models.Template) (models.Template, error)
	GetByID(ctx context.Context, id int64) (models.Template, error)
	OwnerID(ctx context.Context, id int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, rawCursor string, limit int) ([]models.TemplateSummary, string, error)
	Update(ctx context.Context, id int64, title, content *string) (models.Template, error)
	Delete(ctx context.Context, id int64) error
	Like(ctx context.Context, id int64) (int, error)
}

type FoliosStore interface {
	Create(ctx context.Context, authorID int64, in db.FolioCreate) (models.Folio, error)
	GetByID(ctx context.Context, id int64) (models.Folio, error)
	OwnerID(ctx context.Context, id int64) (int64, error)
	ListByAuthor(ctx context.Context, authorID int64, rawCursor string, limit int) ([]models.FolioSummary, string, error)
	Update(ctx context.Context, id int64, title, userInputData *string) (models.Folio, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	tokens     *auth.Service
	users      UsersStore
	templates  TemplatesStore
	folios     FoliosStore
	pagination config.PaginationConfig
	userRules  config.UsersConfig
}

func NewHandler(tokens *auth.Service, users UsersStore, templates TemplatesStore, folios FoliosStore, cfg *config.Config) *Handler {
	return &Handler{
		tokens:     tokens,
		users:      users,
		templates:  templates,
		folios:     folios,
		pagination: cfg.Pagination,
		userRules:  cfg.Users,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/v1")

	users := v1.Group("/users")
	users.POST("", h.handleCreateUser)
	users.GET("/:id", h.handleRetrieveUser)
	users.PATCH("", h.requireUser, h.handleUpdateUser)
	users.DELETE("/:id", h.requireUser, h.handleDeleteUser)

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", h.handleLogin)
	authGroup.GET("/user-retriever", h.requireUser, h.handleUserRetriever)
	authGroup.GET("/renew-token", h.requireUser, h.handleRenewToken)

	templates := v1.Group("/templates")
	templates.POST("", h.requireUser, h.handleCreateTemplate)
	templates.GET("", h.requireUser, h.handleListTemplates)
	templates.GET("/:id", h.handleRetrieveTemplate)
	templates.PATCH("", h.requireUser, h.handleUpdateTemplate)
	templates.DELETE("/:id", h.requireUser, h.handleDeleteTemplate)
	templates.POST("/:id/like", h.requireUser, h.handleLikeTemplate)

	folios := v1.Group("/folios", h.requireUser)
	folios.POST("", h.handleCreateFolio)
	folios.GET("", h.handleListFolios)
	folios.GET("/:id", h.handleRetrieveFolio)
	folios.PATCH("", h.handleUpdateFolio)
	folios.DELETE("/:id", h.handleDeleteFolio)
}

// clampLimit bounds a caller-supplied page size to the configured window.
func (h *Handler) clampLimit(limit int) int {
	if limit <= 0 {
		return h.pagination.DefaultLimit
	}
	if limit > h.pagination.MaxLimit {
		return h.pagination.MaxLimit
	}
	return limit
}

// pageParams reads and validates the cursor/limit query parameters. A second
// return of false means an error response was already written.
func (h *Handler) pageParams(c *gin.Context) (rawCursor string, limit int, ok bool) {
	rawCursor, err := db.DecodeCursorToken(c.Query("cursor"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return "", 0, false
	}

	limit = h.pagination.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
			return "", 0, false
		}
		limit = parsed
	}

	return rawCursor, h.clampLimit(limit), true
}
