package shared

import (
	"github.com/jagoron-news/internal/http/response"

	"github.com/gin-gonic/gin"
)

// context keys set by the auth middlewares
const (
	ContextAdminID    = "admin_id"
	ContextUsername   = "username"
	ContextPrivileged = "privileged"
)

// GetContextUint reads a uint set by a middleware and writes the error response
// when it is missing or malformed
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid "+key, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid "+key, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid "+key+" type", nil)
		return 0, false
	}
}

// IsPrivileged reports whether a staff preview principal is attached
func IsPrivileged(c *gin.Context) bool {
	return c.GetBool(ContextPrivileged)
}

// VisitorKey identifies an anonymous reader: the X-Visitor-ID header, else the
// client ip
func VisitorKey(c *gin.Context) string {
	if id := c.GetHeader("X-Visitor-ID"); id != "" {
		if len(id) > 64 {
			id = id[:64]
		}
		return "v:" + id
	}
	return "ip:" + c.ClientIP()
}
