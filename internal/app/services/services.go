package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/internhub/backend/internal/app/repositories"
	"github.com/internhub/backend/internal/config"
	"github.com/internhub/backend/internal/db"
	"github.com/internhub/backend/internal/pkg/auth"
	"github.com/internhub/backend/internal/pkg/filestorage"
)

// TxRunner executes fn inside a database transaction. Extracted as a function
// type so service tests can run mutations without a live pool.
type TxRunner func(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error

// PoolTxRunner adapts a pgx pool to the TxRunner type
func PoolTxRunner(pool *pgxpool.Pool) TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
		return db.WithTransaction(ctx, pool, db.TransactionFn(fn))
	}
}

// Services bundles all business-logic services for dependency wiring
type Services struct {
	AuthService      *AuthService
	UserService      *UserService
	StudentService   *StudentService
	BatchService     *BatchService
	ProjectService   *ProjectService
	LeaveService     *LeaveService
	QueryService     *QueryService
	DashboardService *DashboardService
}

// NewServices creates all services on top of the shared repositories
func NewServices(cfg *config.Config, pool *pgxpool.Pool, repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	runTx := PoolTxRunner(pool)

	studentService := NewStudentService(repos.StudentRepository, repos.UserRepository, repos.BatchRepository)
	batchService := NewBatchService(repos.BatchRepository, repos.UserRepository, repos.StudentRepository)
	projectService := NewProjectService(repos.ProjectRepository, repos.UserRepository, runTx)
	leaveService := NewLeaveService(repos.LeaveRepository, repos.UserRepository)
	queryService := NewQueryService(repos.QueryRepository, repos.UserRepository)

	return &Services{
		AuthService:      NewAuthService(repos.UserRepository, repos.StudentRepository, jwtService, runTx),
		UserService:      NewUserService(repos.UserRepository, repos.FileRepository, storage, cfg.GetSignedURLTTL()),
		StudentService:   studentService,
		BatchService:     batchService,
		ProjectService:   projectService,
		LeaveService:     leaveService,
		QueryService:     queryService,
		DashboardService: NewDashboardService(studentService, batchService, projectService, leaveService, queryService, repos.StudentRepository, repos.LeaveRepository, repos.QueryRepository, repos.ProjectRepository),
	}
}
