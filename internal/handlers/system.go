package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager-api/internal/middleware"
	"gorm.io/gorm"
)

// SystemHandler serves the banner and health endpoints.
type SystemHandler struct {
	db *gorm.DB
}

// NewSystemHandler creates a SystemHandler. db may be nil when the service
// runs on the in-memory store.
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Root reports that the API is running.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Task Manager API with Users is running!"})
}

// Health reports whether the service can reach its store.
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			middleware.RequestLog(c).Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task Manager API is running",
	})
}
