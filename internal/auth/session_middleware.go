package auth

import (
	"net/http"
	"strings"

	"votebox/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries a raw client-generated session token.
const SessionHeader = "X-Session-ID"

// SessionKey is the gin context key holding the caller's session id.
const SessionKey = "sessionID"

// SessionMiddleware resolves the caller's session id from either a signed
// bearer token or the raw session header and stores it under SessionKey.
// Requests without a usable session id are rejected with 401.
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := sessionFromRequest(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session required", "code": "UNAUTHORIZED"})
			return
		}
		c.Set(SessionKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id stored by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}

func sessionFromRequest(c *gin.Context, secret []byte) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || len(secret) == 0 {
			return "", false
		}
		sessionID, err := jwt.ParseSessionToken(parts[1], secret)
		if err != nil {
			return "", false
		}
		return sessionID, true
	}

	sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
	return sessionID, sessionID != ""
}
