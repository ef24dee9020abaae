package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-manager-api/internal/errors"
)

const paramKeyPrefix = "param:"

// RequireIDParam parses the named path parameter as a numeric ID and stores
// it for GetIDParam. Non-numeric values are rejected with 400.
func RequireIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid "+name)
			return
		}

		c.Set(paramKeyPrefix+name, id)
		c.Next()
	}
}

// GetIDParam retrieves an ID parsed by RequireIDParam
func GetIDParam(c *gin.Context, name string) (uint64, bool) {
	value, exists := c.Get(paramKeyPrefix + name)
	if !exists {
		return 0, false
	}

	id, ok := value.(uint64)
	return id, ok
}
