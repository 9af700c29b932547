package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/repositories"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/helpers"
	"github.com/yigit/dormitory/internal/pkg/validation"
)

// StudentService defines the interface for student registry operations
type StudentService interface {
	Register(ctx context.Context, student *models.Student) (int64, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, query string) ([]*models.Student, error)
}

type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.NewValidationError("student", "student is required")
	}
	student.FullName = strings.TrimSpace(student.FullName)
	if student.FullName == "" {
		return apperrors.NewValidationError("fullName", "full name is required")
	}
	student.BirthDate = strings.TrimSpace(student.BirthDate)
	if student.BirthDate != "" && !helpers.IsValidDate(student.BirthDate) {
		return apperrors.NewValidationError("birthDate", "birth date must be YYYY-MM-DD")
	}
	student.Email = strings.TrimSpace(student.Email)
	student.Phone = strings.TrimSpace(student.Phone)
	if !validation.Optional(student.Email).WithPattern(validation.EmailPattern).Validate() {
		return apperrors.NewValidationError("email", "email address is malformed")
	}
	if !validation.Optional(student.Phone).WithPattern(validation.PhonePattern).Validate() {
		return apperrors.NewValidationError("phone", "phone number is malformed")
	}
	return nil
}

// Register stores a new student
func (s *studentServiceImpl) Register(ctx context.Context, student *models.Student) (int64, error) {
	if err := s.validateStudent(student); err != nil {
		return 0, err
	}

	id, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		return 0, fmt.Errorf("register student: %w", err)
	}

	s.logger.Info().Int64("studentID", id).Msg("Student registered")
	return id, nil
}

// Get returns one student
func (s *studentServiceImpl) Get(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return s.studentRepo.GetStudentByID(ctx, id)
}

// List returns students by full name, optionally filtered by name or group
func (s *studentServiceImpl) List(ctx context.Context, query string) ([]*models.Student, error) {
	return s.studentRepo.ListStudents(ctx, query)
}
