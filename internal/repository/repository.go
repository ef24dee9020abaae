package repository

import (
	"context"

	"github.com/yukikurage/task-manager-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user and fills in its ID and CreatedAt
	Create(ctx context.Context, user *models.User) error

	// List returns every user ordered by ID
	List(ctx context.Context) ([]models.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task and fills in its ID and CreatedAt
	Create(ctx context.Context, task *models.Task) error

	// List returns the tasks of every user ordered by ID
	List(ctx context.Context) ([]models.Task, error)

	// ListByOwner returns the tasks owned by a user ordered by ID
	ListByOwner(ctx context.Context, userID uint64) ([]models.Task, error)

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// FindByIDAndOwner finds a task only if it is owned by the given user
	FindByIDAndOwner(ctx context.Context, id, userID uint64) (*models.Task, error)

	// Update persists changes to an existing task
	Update(ctx context.Context, task *models.Task) error

	// Delete permanently removes a task
	Delete(ctx context.Context, task *models.Task) error

	// CountByOwner returns the number of tasks per owning user ID
	CountByOwner(ctx context.Context) (map[uint64]int64, error)
}
