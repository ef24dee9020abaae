package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager-api/internal/dto"
	apierrors "github.com/yukikurage/task-manager-api/internal/errors"
	"github.com/yukikurage/task-manager-api/internal/middleware"
	"github.com/yukikurage/task-manager-api/internal/services"
)

// UserHandler serves the user endpoints.
type UserHandler struct {
	userService *services.UserService
	taskService *services.TaskService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, taskService *services.TaskService) *UserHandler {
	return &UserHandler{
		userService: userService,
		taskService: taskService,
	}
}

// CreateUser registers a new user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username *string `json:"username" binding:"required"`
		Email    *string `json:"email" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username: *req.Username,
		Email:    *req.Email,
	})
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListUsers returns every user with the number of tasks they own.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	counts, err := h.taskService.TaskCountsByUser(ctx)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, counts))
}

// GetUser returns a single user.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, _ := middleware.GetIDParam(c, "id")

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondNotFound(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
