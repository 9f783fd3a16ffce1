package auth

import "github.com/gin-gonic/gin"

const (
	ctxKeyUserID = "user_id"
	ctxKeyRole   = "role"
)

// GetUserID returns the acting user id injected by the JWT middleware.
// Empty string means the request is unauthenticated.
func GetUserID(c *gin.Context) string {
	if val, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

func GetRole(c *gin.Context) string {
	if val, ok := c.Get(ctxKeyRole); ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
