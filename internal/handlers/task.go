package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager-api/internal/dto"
	apierrors "github.com/yukikurage/task-manager-api/internal/errors"
	"github.com/yukikurage/task-manager-api/internal/middleware"
	"github.com/yukikurage/task-manager-api/internal/services"
)

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new open task for an existing user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       *string `json:"title" binding:"required"`
		Description *string `json:"description"`
		UserID      *uint64 `json:"user_id" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       *req.Title,
		Description: req.Description,
		UserID:      *req.UserID,
	})
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasks returns the tasks of every user.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListAllTasks(c.Request.Context())
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks))
}

// ListTasksByUser returns the tasks owned by one user.
func (h *TaskHandler) ListTasksByUser(c *gin.Context) {
	userID, _ := middleware.GetIDParam(c, "user_id")

	tasks, err := h.taskService.ListTasksByUser(c.Request.Context(), userID)
	if err != nil {
		respondNotFound(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks))
}

// CompleteTask marks a task owned by the acting user as completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	taskID, _ := middleware.GetIDParam(c, "id")
	userID, _ := middleware.GetUserID(c)

	task, err := h.taskService.CompleteTask(c.Request.Context(), taskID, userID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes an open task owned by the acting user.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, _ := middleware.GetIDParam(c, "id")
	userID, _ := middleware.GetUserID(c)

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
