package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/myfolio/server/internal/apperr"
	"github.com/myfolio/server/internal/config"
	"github.com/myfolio/server/internal/db"
	"github.com/myfolio/server/internal/logging"
	"github.com/myfolio/server/internal/models"
)

const (
	contextUserKey      = "currentUser"
	contextRequestIDKey = "requestID"
	requestIDHeader     = "X-Request-Id"
)

// requireUser authenticates the request: extract the bearer credential from
// the Authorization header, verify it, and reload the user it names. Every
// failure mode (missing header, wrong prefix, bad signature, expiry, user
// gone) collapses to the same 401 body.
func (h *Handler) requireUser(c *gin.Context) {
	token, err := h.tokens.ExtractToken(c.GetHeader("Authorization"))
	if err != nil {
		writeErrors(c, http.StatusUnauthorized, apperr.Unauthorized)
		return
	}

	claims, err := h.tokens.VerifyToken(token)
	if err != nil {
		writeErrors(c, http.StatusUnauthorized, apperr.Unauthorized)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeErrors(c, http.StatusUnauthorized, apperr.Unauthorized)
			return
		}
		writeInternal(c, err)
		return
	}

	c.Set(contextUserKey, user)
	c.Next()
}

func currentUser(c *gin.Context) models.User {
	user, _ := c.Get(contextUserKey)
	u, _ := user.(models.User)
	return u
}

// RequestID tags every request with an id, honouring one supplied by the
// caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(contextRequestIDKey)
}

// RequestLogger emits one structured line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestID(c)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// Recovery turns panics into the managed internal-error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logging.Logger().Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestID(c)),
		)
		writeErrors(c, http.StatusInternalServerError, apperr.InternalServerError)
	})
}

// CORS answers preflight requests and stamps the allow headers for the
// configured origins.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowAll := len(cfg.AllowedOrigins) == 0
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[strings.ToLower(origin)] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else if _, ok := allowed[strings.ToLower(origin)]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
