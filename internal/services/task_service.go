package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-manager-api/internal/constants"
	"github.com/yukikurage/task-manager-api/internal/models"
	"github.com/yukikurage/task-manager-api/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	UserID      uint64
}

// CreateTask creates a new open task owned by an existing user
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := s.ensureUserExists(ctx, input.UserID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}
	if utf8.RuneCountInString(title) > constants.MaxTaskTitleLength {
		return nil, ErrTitleTooLong
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		UserID:      input.UserID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		// The owner was removed between the lookup and the insert.
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksByUser returns the tasks owned by an existing user
func (s *TaskService) ListTasksByUser(ctx context.Context, userID uint64) ([]models.Task, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// ListAllTasks returns the tasks of every user
func (s *TaskService) ListAllTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// CompleteTask marks an open task owned by the actor as completed
func (s *TaskService) CompleteTask(ctx context.Context, taskID, actorID uint64) (*models.Task, error) {
	task, err := s.findOwnedTask(ctx, taskID, actorID)
	if err != nil {
		return nil, err
	}

	if task.IsCompleted {
		return nil, ErrTaskAlreadyCompleted
	}

	task.IsCompleted = true
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes an open task owned by the actor
func (s *TaskService) DeleteTask(ctx context.Context, taskID, actorID uint64) error {
	task, err := s.findOwnedTask(ctx, taskID, actorID)
	if err != nil {
		return err
	}

	if task.IsCompleted {
		return ErrCannotDeleteCompleted
	}

	if err := s.taskRepo.Delete(ctx, task); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// TaskCountsByUser returns the number of tasks owned by each user ID
func (s *TaskService) TaskCountsByUser(ctx context.Context) (map[uint64]int64, error) {
	counts, err := s.taskRepo.CountByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return counts, nil
}

// findOwnedTask looks a task up by ID and owner. A missing task and a task
// owned by someone else produce the same error.
func (s *TaskService) findOwnedTask(ctx context.Context, taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndOwner(ctx, taskID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFoundOrForbidden
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ensureUserExists verifies that the user is present
func (s *TaskService) ensureUserExists(ctx context.Context, userID uint64) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
