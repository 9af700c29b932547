package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/app/services"
	"github.com/yigit/dormitory/internal/middleware"
)

// StudentController handles student registry operations
type StudentController struct {
	studentService services.StudentService
	billingService services.BillingService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, billingService services.BillingService) *StudentController {
	return &StudentController{
		studentService: studentService,
		billingService: billingService,
	}
}

// ListStudents lists students, optionally filtered by ?q=
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-insensitive substring of name or study group"
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.List(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if students == nil {
		students = []*models.Student{}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// CreateStudent registers a student
// @Summary Register student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	id, err := c.studentService.Register(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}, "Student registered"))
}

// GetStudent retrieves a student by ID
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Student")
	if !ok {
		return
	}

	student, err := c.studentService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// GetBalance returns the ledger balance of one student
// @Summary Student balance
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentBalance}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/balance [get]
func (c *StudentController) GetBalance(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Student")
	if !ok {
		return
	}

	balance, err := c.billingService.Balance(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(balance, ""))
}
