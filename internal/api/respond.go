package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/myfolio/server/internal/apperr"
	"github.com/myfolio/server/internal/logging"
)

func writeErrors(c *gin.Context, status int, errs ...apperr.Error) {
	c.AbortWithStatusJSON(status, apperr.NewList(errs...))
}

func writeErrorList(c *gin.Context, status int, list apperr.ErrorList) {
	c.AbortWithStatusJSON(status, list)
}

// writeInternal logs the underlying failure and hides it behind the generic
// managed error.
func writeInternal(c *gin.Context, err error) {
	logging.Logger().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestID(c)),
		zap.Error(err),
	)
	writeErrors(c, http.StatusInternalServerError, apperr.InternalServerError)
}

// parseID reads a positive numeric path parameter; anything else is a
// malformed request.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errBadID
	}
	return id, nil
}

var errBadID = errors.New("api: malformed id")
