package middlewares

import (
	"net/http"
	"strings"

	"github.com/Aayush03107/Ai-Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenFromRequest pulls the session token from the "token" cookie, falling
// back to an Authorization bearer header. Returns "" when neither is set.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Auth gates every protected route. Whatever the reason — missing token,
// revoked, bad signature, unknown user — the response is the same 401 body;
// the specific cause only reaches the logs.
func Auth(auth *services.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			log.Info("request rejected by session guard",
				zap.String("path", c.FullPath()),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
