package admin

import (
	"strings"

	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, handlershared.ContextAdminID)
}

func currentAdminID(c *gin.Context) uint {
	value, exists := c.Get(handlershared.ContextAdminID)
	if !exists {
		return 0
	}
	if adminID, ok := value.(uint); ok {
		return adminID
	}
	return 0
}

func currentUsername(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(handlershared.ContextUsername))
}

func currentRequestID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString("request_id"))
}

// parseIDParam parses :name and writes a bad request when it is invalid
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, ok := handlershared.ParseID(c, name)
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return false
	}
	return true
}

// parseOptionalUint reads an optional uint query value and writes a bad
// request when it is malformed
func parseOptionalUint(c *gin.Context, name string) (*uint, bool) {
	value, ok := handlershared.OptionalUintQuery(c, name)
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return nil, false
	}
	return value, true
}
