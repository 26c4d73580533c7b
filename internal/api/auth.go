package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myfolio/server/internal/apperr"
	"github.com/myfolio/server/internal/auth"
	"github.com/myfolio/server/internal/db"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and issues a token. An unknown email and
// a wrong password are deliberately indistinguishable.
func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrors(c, http.StatusBadRequest, apperr.BadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeErrors(c, http.StatusBadRequest, apperr.InvalidCredentials)
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusBadRequest, apperr.InvalidCredentials)
			return
		}
		writeInternal(c, err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.Salt, user.HashedPassword) {
		writeErrors(c, http.StatusBadRequest, apperr.InvalidCredentials)
		return
	}

	token, _, err := h.tokens.IssueToken(user)
	if err != nil {
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// handleUserRetriever echoes back the user the presented token resolves to.
func (h *Handler) handleUserRetriever(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (h *Handler) handleRenewToken(c *gin.Context) {
	token, _, err := h.tokens.IssueToken(currentUser(c))
	if err != nil {
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
