package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"vandra-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// TokenParser validates session tokens
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// RequireUser rejects requests without a valid bearer session token and
// stores the caller's user id on the context.
func RequireUser(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := tokens.ParseToken(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			respondError(c, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// JobAuth guards the monitoring job endpoints. A request passes with the cron
// bearer secret, the internal API key, or when running in development. Empty
// secrets never match.
func JobAuth(cronSecret, internalAPIKey string, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case cronSecret != "" && secretEqual(bearerToken(c.GetHeader("Authorization")), cronSecret):
		case internalAPIKey != "" && secretEqual(c.GetHeader("X-API-Key"), internalAPIKey):
		case development:
		default:
			respondError(c, http.StatusUnauthorized, CodeUnauthorized, "Invalid authorization")
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start).String(),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", fields...)
			return
		}
		log.Debug("Request handled", fields...)
	}
}

func userIDFrom(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func secretEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
