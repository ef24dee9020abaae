package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-manager-api/internal/config"
	"github.com/yukikurage/task-manager-api/internal/database"
	"github.com/yukikurage/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormRepositoryTestSuite runs the GORM repositories against in-memory SQLite
type GormRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	users UserRepository
	tasks TaskRepository
}

func (suite *GormRepositoryTestSuite) SetupTest() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:", LogLevel: "error"}

	db, err := database.Open(cfg, log)
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(db, true, log))

	suite.ctx = context.Background()
	suite.db = db
	suite.users = NewUserRepository(db)
	suite.tasks = NewTaskRepository(db)
}

func (suite *GormRepositoryTestSuite) TearDownTest() {
	database.Close(suite.db)
}

func (suite *GormRepositoryTestSuite) createUser(username, email string) *models.User {
	user := &models.User{Username: username, Email: email}
	suite.Require().NoError(suite.users.Create(suite.ctx, user))
	return user
}

func (suite *GormRepositoryTestSuite) createTask(title string, userID uint64) *models.Task {
	task := &models.Task{Title: title, UserID: userID}
	suite.Require().NoError(suite.tasks.Create(suite.ctx, task))
	return task
}

func (suite *GormRepositoryTestSuite) TestUserLookups() {
	alice := suite.createUser("alice", "a@x.com")
	suite.Equal(uint64(1), alice.ID)
	suite.False(alice.CreatedAt.IsZero())

	found, err := suite.users.FindByID(suite.ctx, alice.ID)
	suite.Require().NoError(err)
	suite.Equal("alice", found.Username)

	found, err = suite.users.FindByUsername(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal(alice.ID, found.ID)

	found, err = suite.users.FindByEmail(suite.ctx, "a@x.com")
	suite.Require().NoError(err)
	suite.Equal(alice.ID, found.ID)

	_, err = suite.users.FindByUsername(suite.ctx, "Alice")
	suite.ErrorIs(err, ErrNotFound)

	_, err = suite.users.FindByEmail(suite.ctx, "A@X.COM")
	suite.ErrorIs(err, ErrNotFound)

	_, err = suite.users.FindByID(suite.ctx, 999)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *GormRepositoryTestSuite) TestUserList() {
	users, err := suite.users.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(users)

	suite.createUser("bob", "b@x.com")
	suite.createUser("alice", "a@x.com")

	users, err = suite.users.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(users, 2)
	suite.Equal("bob", users[0].Username)
	suite.Equal("alice", users[1].Username)
}

func (suite *GormRepositoryTestSuite) TestUserUniqueConstraints() {
	suite.createUser("alice", "a@x.com")

	err := suite.users.Create(suite.ctx, &models.User{Username: "alice", Email: "other@x.com"})
	suite.ErrorIs(err, ErrDuplicate)

	err = suite.users.Create(suite.ctx, &models.User{Username: "other", Email: "a@x.com"})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *GormRepositoryTestSuite) TestTaskCreateRequiresOwner() {
	err := suite.tasks.Create(suite.ctx, &models.Task{Title: "orphan", UserID: 42})
	suite.ErrorIs(err, ErrInvalidReference)
}

func (suite *GormRepositoryTestSuite) TestTaskQueries() {
	alice := suite.createUser("alice", "a@x.com")
	bob := suite.createUser("bob", "b@x.com")
	description := "details"

	first := &models.Task{Title: "first", Description: &description, UserID: alice.ID}
	suite.Require().NoError(suite.tasks.Create(suite.ctx, first))
	suite.createTask("second", bob.ID)
	suite.createTask("third", alice.ID)

	all, err := suite.tasks.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 3)

	owned, err := suite.tasks.ListByOwner(suite.ctx, alice.ID)
	suite.Require().NoError(err)
	suite.Require().Len(owned, 2)
	suite.Equal("first", owned[0].Title)
	suite.Equal("third", owned[1].Title)
	suite.Require().NotNil(owned[0].Description)
	suite.Equal("details", *owned[0].Description)

	none, err := suite.tasks.ListByOwner(suite.ctx, 999)
	suite.Require().NoError(err)
	suite.Empty(none)

	found, err := suite.tasks.FindByIDAndOwner(suite.ctx, first.ID, alice.ID)
	suite.Require().NoError(err)
	suite.Equal(first.ID, found.ID)

	_, err = suite.tasks.FindByIDAndOwner(suite.ctx, first.ID, bob.ID)
	suite.ErrorIs(err, ErrNotFound)

	_, err = suite.tasks.FindByID(suite.ctx, 999)
	suite.ErrorIs(err, ErrNotFound)

	counts, err := suite.tasks.CountByOwner(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(map[uint64]int64{alice.ID: 2, bob.ID: 1}, counts)
}

func (suite *GormRepositoryTestSuite) TestTaskUpdateAndDelete() {
	alice := suite.createUser("alice", "a@x.com")
	task := suite.createTask("Test", alice.ID)

	task.IsCompleted = true
	suite.Require().NoError(suite.tasks.Update(suite.ctx, task))

	stored, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.True(stored.IsCompleted)
	suite.Equal("Test", stored.Title)

	suite.Require().NoError(suite.tasks.Delete(suite.ctx, stored))

	_, err = suite.tasks.FindByID(suite.ctx, task.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *GormRepositoryTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, err := suite.users.List(ctx)
	suite.ErrorIs(err, context.Canceled)
	suite.NotErrorIs(err, ErrNotFound)
}

func TestGormRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormRepositoryTestSuite))
}
