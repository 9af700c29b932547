package models

// Student defines the student model based on the 'students' table.
// Optional text columns are stored as NULL when empty.
type Student struct {
	ID           int64  `json:"id" db:"id"`
	FullName     string `json:"fullName" db:"full_name"`
	BirthDate    string `json:"birthDate,omitempty" db:"birth_date"`
	PassportData string `json:"passportData,omitempty" db:"passport_data"`
	Phone        string `json:"phone,omitempty" db:"phone"`
	Email        string `json:"email,omitempty" db:"email"`
	StudyGroup   string `json:"studyGroup,omitempty" db:"study_group"`
	Faculty      string `json:"faculty,omitempty" db:"faculty"`
	StudyMode    string `json:"studyMode,omitempty" db:"study_mode"`
	HasBenefits  bool   `json:"hasBenefits" db:"has_benefits"`
	Notes        string `json:"notes,omitempty" db:"notes"`
}
