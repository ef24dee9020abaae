package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-manager-api/internal/errors"
	"github.com/yukikurage/task-manager-api/internal/middleware"
	"github.com/yukikurage/task-manager-api/internal/services"
)

// respondServiceError reports business rule violations with the given status
// and everything else as an internal error.
func respondServiceError(c *gin.Context, status int, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		apierrors.Respond(c, status, vErr)
		return
	}

	middleware.RequestLog(c).Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	apierrors.InternalError(c, "")
}

func respondBadRequest(c *gin.Context, err error) {
	respondServiceError(c, http.StatusBadRequest, err)
}

func respondNotFound(c *gin.Context, err error) {
	respondServiceError(c, http.StatusNotFound, err)
}
