package dto

import "github.com/yigit/dormitory/internal/app/models"

// CreateStudentRequest registers a student; only fullName is required
type CreateStudentRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	BirthDate    string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	PassportData string `json:"passportData"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	StudyGroup   string `json:"studyGroup"`
	Faculty      string `json:"faculty"`
	StudyMode    string `json:"studyMode"`
	HasBenefits  bool   `json:"hasBenefits"`
	Notes        string `json:"notes"`
}

// ToModel maps the request onto a new student
func (r CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		FullName:     r.FullName,
		BirthDate:    r.BirthDate,
		PassportData: r.PassportData,
		Phone:        r.Phone,
		Email:        r.Email,
		StudyGroup:   r.StudyGroup,
		Faculty:      r.Faculty,
		StudyMode:    r.StudyMode,
		HasBenefits:  r.HasBenefits,
		Notes:        r.Notes,
	}
}
