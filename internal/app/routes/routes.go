// Package routes wires HTTP endpoints to their controllers
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/internhub/backend/internal/app/controllers"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/middleware"
)

// Controllers bundles every controller the router needs
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	File      *controllers.FileController
	Student   *controllers.StudentController
	Batch     *controllers.BatchController
	Project   *controllers.ProjectController
	Leave     *controllers.LeaveController
	Query     *controllers.QueryController
	Dashboard *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// File downloads are gated by the URL signature, not by a session
	v1.GET("/files/*path", c.File.Download)

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"status": "ok"}})
	})

	v1.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/session", c.Auth.Session)

		// Identity routes stay open to pending students so they can
		// finish their profile while waiting for approval
		users := authenticated.Group("/users")
		{
			users.GET("/me", c.User.Me)
			users.PATCH("/me", c.User.UpdateProfile)
			users.POST("/me/avatar", c.User.UploadAvatar)
			users.POST("/me/resume", c.User.UploadResume)
		}

		studentSelf := authenticated.Group("/students", authMiddleware.RoleRequired(models.RoleStudent))
		{
			studentSelf.GET("/me", c.Student.GetMyProfile)
			studentSelf.PATCH("/me", c.Student.UpdateMyProfile)
		}

		// Everything below needs an active portal member: faculty,
		// admins, or approved students
		portal := authenticated.Group("", authMiddleware.ApprovalRequired())
		{
			batches := portal.Group("/batches")
			{
				batches.GET("", c.Batch.ListBatches)
				batches.GET("/:id", c.Batch.GetBatch)
			}

			projects := portal.Group("/projects")
			{
				projects.GET("", c.Project.ListProjects)
				projects.GET("/mine", c.Project.ListMyProjects)
				projects.GET("/:id", c.Project.GetProject)
				projects.POST("", c.Project.CreateProject)
				projects.POST("/:id/members", c.Project.AddMember)
				projects.DELETE("/:id/members/:memberId", c.Project.RemoveMember)
			}

			leaves := portal.Group("/leaves")
			{
				leaves.POST("", c.Leave.CreateLeave)
				leaves.GET("/mine", c.Leave.ListMyLeaves)
				leaves.GET("/:id", c.Leave.GetLeave)
			}

			queries := portal.Group("/queries")
			{
				queries.POST("", c.Query.CreateQuery)
				queries.GET("/mine", c.Query.ListMyQueries)
				queries.GET("/:id", c.Query.GetQuery)
			}

			portal.GET("/dashboard/student", authMiddleware.RoleRequired(models.RoleStudent), c.Dashboard.StudentDashboard)

			faculty := portal.Group("", authMiddleware.RoleRequired(models.RoleFaculty))
			{
				faculty.GET("/dashboard/faculty", c.Dashboard.FacultyDashboard)
				faculty.GET("/faculty/batches", c.Batch.ListMyBatches)
				faculty.GET("/faculty/students", c.Student.ListMyStudents)
			}

			admin := portal.Group("", authMiddleware.RoleRequired(models.RoleAdmin))
			{
				admin.GET("/dashboard/admin", c.Dashboard.AdminDashboard)

				admin.GET("/students", c.Student.ListStudents)
				admin.GET("/students/:id", c.Student.GetStudent)
				admin.PATCH("/students/:id", c.Student.UpdateStudent)
				admin.POST("/students/:id/approve", c.Student.ApproveStudent)
				admin.POST("/students/:id/reject", c.Student.RejectStudent)

				admin.POST("/batches", c.Batch.CreateBatch)
				admin.PATCH("/batches/:id", c.Batch.UpdateBatch)

				admin.GET("/leaves", c.Leave.ListLeaves)
				admin.POST("/leaves/:id/approve", c.Leave.ApproveLeave)
				admin.POST("/leaves/:id/reject", c.Leave.RejectLeave)

				admin.GET("/queries", c.Query.ListQueries)
				admin.POST("/queries/:id/resolve", c.Query.ResolveQuery)
				admin.POST("/queries/:id/reopen", c.Query.ReopenQuery)
			}
		}
	}
}
