package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager-api/internal/models"
	"github.com/yukikurage/task-manager-api/internal/repository"
)

var errStorage = errors.New("storage unavailable")

// racingUserRepo simulates a concurrent writer: lookups miss, but the insert
// hits the unique constraint because another request created the row first.
type racingUserRepo struct {
	repository.UserRepository
	winner models.User
	raced  bool
}

func (r *racingUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if r.raced && username == r.winner.Username {
		return &r.winner, nil
	}
	return nil, repository.ErrNotFound
}

func (r *racingUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (r *racingUserRepo) Create(ctx context.Context, user *models.User) error {
	r.raced = true
	return fmt.Errorf("%w: UNIQUE constraint failed", repository.ErrDuplicate)
}

// brokenUserRepo fails every call with a storage error
type brokenUserRepo struct {
	repository.UserRepository
}

func (brokenUserRepo) FindByID(context.Context, uint64) (*models.User, error) {
	return nil, errStorage
}

func (brokenUserRepo) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, errStorage
}

func (brokenUserRepo) List(context.Context) ([]models.User, error) {
	return nil, errStorage
}

func newUserService() (*UserService, repository.UserRepository) {
	store := repository.NewMemoryStore()
	users := store.Users()
	return NewUserService(users), users
}

func TestUserService_CreateUser_Success(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{Username: "  alice  ", Email: " a@x.com "})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	stored, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
}

func TestUserService_CreateUser_EmptyUsername(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	for _, username := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateUser(ctx, CreateUserInput{Username: username, Email: "a@b.com"})
		require.ErrorIs(t, err, ErrUsernameEmpty)
		assert.EqualError(t, err, "Username cannot be empty")
	}

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserService_CreateUser_DuplicateUsername(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Username: "existing", Email: "first@example.com"})
	require.NoError(t, err)

	// The duplicate wins regardless of email validity.
	for _, email := range []string{"second@example.com", "not-an-email", ""} {
		_, err = svc.CreateUser(ctx, CreateUserInput{Username: " existing ", Email: email})
		require.ErrorIs(t, err, ErrUsernameTaken)
		assert.EqualError(t, err, "Username already exists")
	}
}

func TestUserService_CreateUser_UsernameIsCaseSensitive(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	user, err := svc.CreateUser(ctx, CreateUserInput{Username: "Alice", Email: "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Username)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Username: "first", Email: "existing@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserInput{Username: "newuser", Email: "  existing@example.com"})
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.EqualError(t, err, "Email already exists")
}

func TestUserService_CreateUser_InvalidEmail(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	for _, email := range []string{"bad-email", "", "   "} {
		_, err := svc.CreateUser(ctx, CreateUserInput{Username: "bob", Email: email})
		require.ErrorIs(t, err, ErrInvalidEmail)
		assert.EqualError(t, err, "Invalid email format")
	}

	_, err := users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserService_CreateUser_DuplicateCheckedBeforeFormat(t *testing.T) {
	store := repository.NewMemoryStore()
	users := store.Users()
	ctx := context.Background()

	// A malformed email that already exists reports the duplicate first.
	require.NoError(t, users.Create(ctx, &models.User{Username: "legacy", Email: "no-at-sign"}))

	svc := NewUserService(users)
	_, err := svc.CreateUser(ctx, CreateUserInput{Username: "bob", Email: "no-at-sign"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_CreateUser_ConcurrentInsertConflict(t *testing.T) {
	repo := &racingUserRepo{winner: models.User{ID: 7, Username: "alice", Email: "a@x.com"}}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Username: "alice", Email: "a@x.com"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	repo = &racingUserRepo{winner: models.User{ID: 7, Username: "someone-else", Email: "a@x.com"}}
	svc = NewUserService(repo)

	_, err = svc.CreateUser(context.Background(), CreateUserInput{Username: "alice", Email: "a@x.com"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_CreateUser_StorageFailure(t *testing.T) {
	svc := NewUserService(brokenUserRepo{})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Username: "alice", Email: "a@x.com"})
	require.ErrorIs(t, err, errStorage)

	var vErr *ValidationError
	assert.False(t, errors.As(err, &vErr))
}

func TestUserService_ListUsers(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = svc.CreateUser(ctx, CreateUserInput{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserInput{Username: "bob", Email: "b@x.com"})
	require.NoError(t, err)

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	_, err = NewUserService(brokenUserRepo{}).ListUsers(ctx)
	assert.ErrorIs(t, err, errStorage)
}

func TestUserService_GetUser(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserInput{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Username, user.Username)

	_, err = svc.GetUser(ctx, 999)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.EqualError(t, err, "User not found")

	_, err = NewUserService(brokenUserRepo{}).GetUser(ctx, 1)
	assert.ErrorIs(t, err, errStorage)
}

func TestValidationError_MatchesByReason(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrTaskAlreadyCompleted)

	assert.ErrorIs(t, wrapped, ErrTaskAlreadyCompleted)
	assert.NotErrorIs(t, wrapped, ErrCannotDeleteCompleted)

	var vErr *ValidationError
	require.ErrorAs(t, wrapped, &vErr)
	assert.Equal(t, ReasonAlreadyCompleted, vErr.Reason)
	assert.Equal(t, "ALREADY_COMPLETED", vErr.Reason.String())
	assert.Equal(t, "UNKNOWN", Reason(0).String())
}
