package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager-api/internal/middleware"
)

// RegisterRoutes mounts every endpoint on r.
func RegisterRoutes(r gin.IRouter, system *SystemHandler, users *UserHandler, tasks *TaskHandler) {
	r.GET("/", system.Root)
	r.GET("/health", system.Health)

	api := r.Group("/api")
	{
		userRoutes := api.Group("/users")
		{
			userRoutes.POST("/", users.CreateUser)
			userRoutes.GET("/", users.ListUsers)
			userRoutes.GET("/:id", middleware.RequireIDParam("id"), users.GetUser)
		}

		taskRoutes := api.Group("/tasks")
		{
			taskRoutes.POST("/", tasks.CreateTask)
			taskRoutes.GET("/", tasks.ListTasks)
			taskRoutes.GET("/user/:user_id", middleware.RequireIDParam("user_id"), tasks.ListTasksByUser)
			taskRoutes.PUT("/:id/complete", middleware.RequireIDParam("id"), middleware.RequireUserID(), tasks.CompleteTask)
			taskRoutes.DELETE("/:id", middleware.RequireIDParam("id"), middleware.RequireUserID(), tasks.DeleteTask)
		}
	}
}
