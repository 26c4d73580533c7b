package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myfolio/server/internal/apperr"
	"github.com/myfolio/server/internal/db"
	"github.com/myfolio/server/internal/models"
)

type createTemplateRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateTemplateRequest struct {
	ID      int64   `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) handleCreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if !models.ValidTemplateType(req.Type) || req.Title == "" || req.Content == "" {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	user := currentUser(c)
	tpl, err := h.templates.Create(c.Request.Context(), models.Template{
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
		UserID:  user.ID,
	})
	if err != nil {
		writeInternal(c, err)
		return
	}

	tpl.Author = user.Author()
	c.JSON(http.StatusCreated, tpl)
}

func (h *Handler) handleRetrieveTemplate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	tpl, err := h.templates.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) handleListTemplates(c *gin.Context) {
	rawCursor, limit, ok := h.pageParams(c)
	if !ok {
		return
	}

	summaries, lastCursor, err := h.templates.ListByUser(c.Request.Context(), currentUser(c).ID, rawCursor, limit)
	if err != nil {
		writeInternal(c, err)
		return
	}

	resp := gin.H{"templates": summaries}
	if lastCursor != "" {
		resp["next_cursor"] = db.EncodeCursorToken(lastCursor)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleUpdateTemplate(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if req.ID < 1 || (req.Title == nil && req.Content == nil) {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if !h.authorizeTemplateOwner(c, req.ID) {
		return
	}

	tpl, err := h.templates.Update(c.Request.Context(), req.ID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) handleDeleteTemplate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if !h.authorizeTemplateOwner(c, id) {
		return
	}

	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleLikeTemplate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	likes, err := h.templates.Like(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// authorizeTemplateOwner resolves the template's owner and rejects the
// request with 404 (absent) or 403 (not the caller's) before any mutation
// runs. Returns false when a response was written.
func (h *Handler) authorizeTemplateOwner(c *gin.Context, id int64) bool {
	ownerID, err := h.templates.OwnerID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return false
		}
		writeInternal(c, err)
		return false
	}

	if ownerID != currentUser(c).ID {
		writeErrors(c, http.StatusForbidden, apperr.Forbidden)
		return false
	}

	return true
}
