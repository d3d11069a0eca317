package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx operations the repositories use. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all data-access objects for dependency wiring
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	BatchRepository   *BatchRepository
	ProjectRepository *ProjectRepository
	LeaveRepository   *LeaveRepository
	QueryRepository   *QueryRepository
	FileRepository    *FileRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(pool),
		StudentRepository: NewStudentRepository(pool),
		BatchRepository:   NewBatchRepository(pool),
		ProjectRepository: NewProjectRepository(pool),
		LeaveRepository:   NewLeaveRepository(pool),
		QueryRepository:   NewQueryRepository(pool),
		FileRepository:    NewFileRepository(pool),
	}
}
