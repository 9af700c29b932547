package services

import (
	"errors"
	"testing"
	"time"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/pkg/auth"
	"github.com/yigit/dormitory/internal/pkg/logger"
	"github.com/yigit/dormitory/internal/testkit"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	store, repos := testkit.NewRepositories(t)
	hasher, err := auth.NewPasswordHasher(auth.SchemeSHA256)
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	return NewServices(store, repos, hasher, jwtService, logger.Nop())
}

func mustRegister(t *testing.T, svc *Services, name string) int64 {
	t.Helper()
	id, err := svc.Students.Register(t.Context(), &models.Student{FullName: name})
	if err != nil {
		t.Fatalf("register %q: %v", name, err)
	}
	return id
}

func mustRoom(t *testing.T, svc *Services, building, number string, floor, beds int) int64 {
	t.Helper()
	id, err := svc.Occupancy.CreateRoom(t.Context(), &models.Room{
		Building:   building,
		RoomNumber: number,
		Floor:      floor,
		TotalBeds:  beds,
	})
	if err != nil {
		t.Fatalf("create room %s-%s: %v", building, number, err)
	}
	return id
}

func assertIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}
