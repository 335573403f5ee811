package service

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/repository"
	"github.com/alexanderramin/semester/internal/testutil"
)

type testRepos struct {
	db          *sql.DB
	courses     repository.CourseRepo
	assignments repository.AssignmentRepo
	tasks       repository.TaskRepo
	connections repository.ConnectionRepo
	uow         db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:          database,
		courses:     repository.NewSQLiteCourseRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
		tasks:       repository.NewSQLiteTaskRepo(database),
		connections: repository.NewSQLiteConnectionRepo(database),
		uow:         testutil.NewTestUoW(database),
	}
}
