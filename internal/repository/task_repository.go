package repository

import (
	"context"

	"github.com/yukikurage/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return mapError("create task", r.db.WithContext(ctx).Create(task).Error)
}

// List returns all tasks across users
func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, mapError("list tasks", err)
	}
	return tasks, nil
}

// ListByOwner returns the tasks owned by a user
func (r *GormTaskRepository) ListByOwner(ctx context.Context, userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&tasks).Error; err != nil {
		return nil, mapError("list tasks by user", err)
	}
	return tasks, nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, mapError("find task", err)
	}
	return &task, nil
}

// FindByIDAndOwner finds a task matching both its ID and its owner
func (r *GormTaskRepository) FindByIDAndOwner(ctx context.Context, id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error; err != nil {
		return nil, mapError("find task", err)
	}
	return &task, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return mapError("update task", r.db.WithContext(ctx).Save(task).Error)
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, task *models.Task) error {
	return mapError("delete task", r.db.WithContext(ctx).Delete(task).Error)
}

// CountByOwner counts tasks grouped by their owner
func (r *GormTaskRepository) CountByOwner(ctx context.Context) (map[uint64]int64, error) {
	var rows []struct {
		UserID uint64
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, mapError("count tasks", err)
	}

	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
