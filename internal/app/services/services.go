package services

import (
	"github.com/rs/zerolog"

	"github.com/yigit/dormitory/internal/app/repositories"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/auth"
)

// Services holds every application service
type Services struct {
	Auth      *AuthService
	Students  StudentService
	Occupancy OccupancyService
	Billing   BillingService
}

// NewServices wires services onto one store
func NewServices(store *db.DB, repos *repositories.Repositories, hasher *auth.PasswordHasher, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.UserRepository, hasher, jwtService, logger.With().Str("service", "auth").Logger()),
		Students:  NewStudentService(repos.StudentRepository, logger.With().Str("service", "students").Logger()),
		Occupancy: NewOccupancyService(store, repos, logger.With().Str("service", "occupancy").Logger()),
		Billing:   NewBillingService(repos.BillingRepository, logger.With().Str("service", "billing").Logger()),
	}
}
