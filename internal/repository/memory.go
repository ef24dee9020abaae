package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yukikurage/task-manager-api/internal/models"
)

// MemoryStore keeps users and tasks in process memory. It enforces the same
// unique and foreign key constraints as the SQL schema, so it can stand in
// for the database in tests and in DB_DRIVER=memory mode.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[uint64]models.User
	tasks      map[uint64]models.Task
	nextUserID uint64
	nextTaskID uint64
	now        func() time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uint64]models.User),
		tasks: make(map[uint64]models.Task),
		now:   time.Now,
	}
}

// Users returns a UserRepository backed by the store
func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{store: s}
}

// Tasks returns a TaskRepository backed by the store
func (s *MemoryStore) Tasks() TaskRepository {
	return &memoryTaskRepository{store: s}
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return fmt.Errorf("%w: username %q", ErrDuplicate, user.Username)
		}
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email %q", ErrDuplicate, user.Email)
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = s.now()
	stored := *user
	stored.Tasks = nil
	s.users[user.ID] = stored
	return nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint64) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) findBy(match func(models.User) bool) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

type memoryTaskRepository struct {
	store *MemoryStore
}

func (r *memoryTaskRepository) Create(_ context.Context, task *models.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[task.UserID]; !ok {
		return fmt.Errorf("%w: user %d", ErrInvalidReference, task.UserID)
	}

	s.nextTaskID++
	task.ID = s.nextTaskID
	task.CreatedAt = s.now()
	s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *memoryTaskRepository) List(_ context.Context) ([]models.Task, error) {
	return r.filter(func(models.Task) bool { return true }), nil
}

func (r *memoryTaskRepository) ListByOwner(_ context.Context, userID uint64) ([]models.Task, error) {
	return r.filter(func(t models.Task) bool { return t.UserID == userID }), nil
}

func (r *memoryTaskRepository) FindByID(_ context.Context, id uint64) (*models.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := cloneTask(t)
	return &found, nil
}

func (r *memoryTaskRepository) FindByIDAndOwner(ctx context.Context, id, userID uint64) (*models.Task, error) {
	task, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotFound
	}
	return task, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, task *models.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.users[task.UserID]; !ok {
		return fmt.Errorf("%w: user %d", ErrInvalidReference, task.UserID)
	}
	s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, task *models.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, task.ID)
	return nil
}

func (r *memoryTaskRepository) CountByOwner(_ context.Context) (map[uint64]int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[uint64]int64)
	for _, t := range s.tasks {
		counts[t.UserID]++
	}
	return counts, nil
}

func (r *memoryTaskRepository) filter(keep func(models.Task) bool) []models.Task {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, t := range s.tasks {
		if keep(t) {
			tasks = append(tasks, cloneTask(t))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func cloneTask(t models.Task) models.Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}
