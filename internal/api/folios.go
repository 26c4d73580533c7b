package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myfolio/server/internal/apperr"
	"github.com/myfolio/server/internal/db"
	"github.com/myfolio/server/internal/models"
)

type createFolioRequest struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	BaseTemplateID int64  `json:"base_template_id"`
	UserInputData  string `json:"user_input_data"`
}

type updateFolioRequest struct {
	ID            int64   `json:"id"`
	Title         *string `json:"title"`
	UserInputData *string `json:"user_input_data"`
}

func (h *Handler) handleCreateFolio(c *gin.Context) {
	var req createFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if !models.ValidTemplateType(req.Type) || req.Title == "" || req.BaseTemplateID < 1 {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	user := currentUser(c)
	folio, err := h.folios.Create(c.Request.Context(), user.ID, db.FolioCreate{
		Type:           req.Type,
		Title:          req.Title,
		BaseTemplateID: req.BaseTemplateID,
		UserInputData:  req.UserInputData,
	})
	if err != nil {
		// ErrNotFound here means the base template is gone.
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	folio.Author = user.Author()
	c.JSON(http.StatusCreated, folio)
}

func (h *Handler) handleRetrieveFolio(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if !h.authorizeFolioOwner(c, id) {
		return
	}

	folio, err := h.folios.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, folio)
}

func (h *Handler) handleListFolios(c *gin.Context) {
	rawCursor, limit, ok := h.pageParams(c)
	if !ok {
		return
	}

	user := currentUser(c)
	summaries, lastCursor, err := h.folios.ListByAuthor(c.Request.Context(), user.ID, rawCursor, limit)
	if err != nil {
		writeInternal(c, err)
		return
	}

	resp := gin.H{
		"author": user.Author(),
		"folios": summaries,
	}
	if lastCursor != "" {
		resp["next_cursor"] = db.EncodeCursorToken(lastCursor)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleUpdateFolio(c *gin.Context) {
	var req updateFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if req.ID < 1 || (req.Title == nil && req.UserInputData == nil) {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if !h.authorizeFolioOwner(c, req.ID) {
		return
	}

	folio, err := h.folios.Update(c.Request.Context(), req.ID, req.Title, req.UserInputData)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, folio)
}

func (h *Handler) handleDeleteFolio(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if !h.authorizeFolioOwner(c, id) {
		return
	}

	if err := h.folios.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) authorizeFolioOwner(c *gin.Context, id int64) bool {
	authorID, err := h.folios.OwnerID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return false
		}
		writeInternal(c, err)
		return false
	}

	if authorID != currentUser(c).ID {
		writeErrors(c, http.StatusForbidden, apperr.Forbidden)
		return false
	}

	return true
}
