package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myfolio/server/internal/apperr"
	"github.com/myfolio/server/internal/auth"
	"github.com/myfolio/server/internal/db"
	"github.com/myfolio/server/internal/models"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	ID       int64   `json:"id"`
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (h *Handler) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if list := h.validateUserFields(&req.Email, &req.Username, &req.Password); !list.Empty() {
		writeErrorList(c, http.StatusBadRequest, list)
		return
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		writeInternal(c, err)
		return
	}
	hash, err := auth.HashPassword(req.Password, salt)
	if err != nil {
		writeInternal(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), models.User{
		Email:          req.Email,
		Username:       req.Username,
		Salt:           salt,
		HashedPassword: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicateEmail):
			writeErrors(c, http.StatusBadRequest, apperr.DuplicatedEmail)
		case errors.Is(err, db.ErrDuplicateUsername):
			writeErrors(c, http.StatusBadRequest, apperr.DuplicatedUsername)
		default:
			writeInternal(c, err)
		}
		return
	}

	token, _, err := h.tokens.IssueToken(user)
	if err != nil {
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *Handler) handleRetrieveUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleUpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	user := currentUser(c)
	if req.ID != user.ID {
		writeErrors(c, http.StatusForbidden, apperr.Forbidden)
		return
	}

	if req.Email == nil && req.Username == nil && req.Password == nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if list := h.validateUserFields(req.Email, req.Username, req.Password); !list.Empty() {
		writeErrorList(c, http.StatusBadRequest, list)
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil {
		// A password change always draws a fresh salt.
		salt, err := auth.GenerateSalt()
		if err != nil {
			writeInternal(c, err)
			return
		}
		hash, err := auth.HashPassword(*req.Password, salt)
		if err != nil {
			writeInternal(c, err)
			return
		}
		user.Salt = salt
		user.HashedPassword = hash
	}

	updated, err := h.users.Update(c.Request.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicateEmail):
			writeErrors(c, http.StatusBadRequest, apperr.DuplicatedEmail)
		case errors.Is(err, db.ErrDuplicateUsername):
			writeErrors(c, http.StatusBadRequest, apperr.DuplicatedUsername)
		case errors.Is(err, db.ErrNotFound):
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
		default:
			writeInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) handleDeleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if id != currentUser(c).ID {
		writeErrors(c, http.StatusForbidden, apperr.Forbidden)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusNotFound, apperr.NotFound)
			return
		}
		writeInternal(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
