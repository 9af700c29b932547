package repositories

import (
	"database/sql"
	"errors"

	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/dberrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	RoomRepository    *RoomRepository
	StayRepository    *StayRepository
	BillingRepository *BillingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(store *db.DB) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(store),
		StudentRepository: NewStudentRepository(store),
		RoomRepository:    NewRoomRepository(store),
		StayRepository:    NewStayRepository(store),
		BillingRepository: NewBillingRepository(store),
	}
}

// translateError maps store constraint failures onto application error kinds.
// duplicate is returned for unique violations when given.
func translateError(err error, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case dberrors.IsUniqueViolation(err):
		if duplicate != nil {
			return duplicate
		}
		return apperrors.NewConstraintError(err.Error())
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrUnknownReference
	case dberrors.IsCheckViolation(err):
		return apperrors.NewConstraintError("value not allowed: " + err.Error())
	}
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
