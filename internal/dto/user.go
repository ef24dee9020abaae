package dto

import "github.com/yukikurage/task-manager-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserWithTaskCountDTO represents a user in list responses
type UserWithTaskCountDTO struct {
	UserDTO
	TaskCount int64 `json:"task_count"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToUserListResponse converts users to list DTOs, attaching each user's task count
func ToUserListResponse(users []models.User, taskCounts map[uint64]int64) []UserWithTaskCountDTO {
	items := make([]UserWithTaskCountDTO, len(users))
	for i, user := range users {
		items[i] = UserWithTaskCountDTO{
			UserDTO:   ToUserDTO(user),
			TaskCount: taskCounts[user.ID],
		}
	}
	return items
}
