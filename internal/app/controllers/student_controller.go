package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/app/services"
	"github.com/internhub/backend/internal/middleware"
	"github.com/internhub/backend/internal/pkg/helpers"
)

// StudentController handles student profile and approval operations
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

func studentFilterFromQuery(ctx *gin.Context) services.StudentListFilter {
	return services.StudentListFilter{
		ApprovalStatus: ctx.Query("approvalStatus"),
		Track:          ctx.Query("track"),
		SkillLevel:     ctx.Query("skillLevel"),
		BatchID:        queryInt64(ctx, "batchId"),
		Search:         ctx.Query("search"),
		Page:           helpers.ParsePageParam(ctx),
	}
}

// GetMyProfile returns the caller's student profile
// @Summary Get my student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Profile with batch joined in"
// @Failure 404 {object} dto.ErrorResponse "No student profile"
// @Router /students/me [get]
func (c *StudentController) GetMyProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.studentService.GetProfileByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudentProfile(profile), Timestamp: time.Now()})
}

// UpdateMyProfile edits the caller's academic fields while still pending
// @Summary Update my academic details
// @Description Academic fields are editable only until the profile is approved.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Updated profile"
// @Failure 409 {object} dto.ErrorResponse "Profile locked after approval"
// @Router /students/me [patch]
func (c *StudentController) UpdateMyProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	profile, err := c.studentService.UpdateOwnAcademics(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudentProfile(profile), Timestamp: time.Now()})
}

// ListStudents returns one page of the full student roster
// @Summary List students
// @Description Admin view of every student. Filters AND together; search matches name, email and USN.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Param approvalStatus query string false "pending, approved or rejected"
// @Param track query string false "vlsi, ai-ml, mern or java"
// @Param skillLevel query string false "beginner, intermediate or advanced"
// @Param batchId query int false "Batch id"
// @Param search query string false "Case-insensitive substring"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One roster page"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, pagination, err := c.studentService.ListStudents(ctx.Request.Context(), studentFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: students, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListMyStudents returns the roster restricted to the caller's batches
// @Summary List my batch students
// @Description Faculty view of the students enrolled in the caller's assigned batches.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "One roster page"
// @Router /faculty/students [get]
func (c *StudentController) ListMyStudents(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	students, pagination, err := c.studentService.ListStudentsForFaculty(ctx.Request.Context(), userID, studentFilterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: students, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// GetStudent returns one student profile by id
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student profile id"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.studentService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudentProfile(profile), Timestamp: time.Now()})
}

// UpdateStudent applies an admin edit to any student profile
// @Summary Update a student
// @Description Admin edit of academic fields and batch assignment. Not subject to the approval lock.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student profile id"
// @Param request body dto.UpdateStudentProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Updated profile"
// @Router /students/{id} [patch]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	profile, err := c.studentService.AdminUpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudentProfile(profile), Timestamp: time.Now()})
}

// ApproveStudent approves a pending profile
// @Summary Approve a student
// @Description Approves a pending profile, assigning the official student id and a batch in one step.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student profile id"
// @Param request body dto.ApproveStudentRequest true "Student id and batch"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Approved profile"
// @Failure 409 {object} dto.ErrorResponse "Profile already reviewed or batch completed"
// @Router /students/{id}/approve [post]
func (c *StudentController) ApproveStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApproveStudentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	profile, err := c.studentService.ApproveStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("profileID", id).Msg("Student approval processed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudentProfile(profile), Timestamp: time.Now()})
}

// RejectStudent rejects a pending profile
// @Summary Reject a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student profile id"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Rejected profile"
// @Failure 409 {object} dto.ErrorResponse "Profile already reviewed"
// @Router /students/{id}/reject [post]
func (c *StudentController) RejectStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.studentService.RejectStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromStudentProfile(profile), Timestamp: time.Now()})
}
