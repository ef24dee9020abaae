package dto

import "github.com/yukikurage/task-manager-api/internal/models"

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
	UserID      uint64  `json:"user_id"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		UserID:      task.UserID,
	}
}

// ToTaskListResponse converts a slice of tasks to DTOs
func ToTaskListResponse(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
