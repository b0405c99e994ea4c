package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/auth"
)

const claimsKey = "claims"

// AuthMiddleware requires a signed-in session with a valid token. A session
// holding an expired or forged token is signed out.
func AuthMiddleware(tokens *auth.Tokens, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok || !sess.Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(sess.Token)
		if err != nil || sess.User.ID != claims.UserID {
			logger.Warn("Rejected session token", zap.String("session_id", sess.ID))
			sess.SignOut()
			if err := SaveSession(c); err != nil {
				logger.Error("Failed to save session", zap.Error(err))
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, sign in again"})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}
