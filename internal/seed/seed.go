package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appAuth "github.com/yigit/dormitory/internal/app/auth"
	appModels "github.com/yigit/dormitory/internal/app/models"
	appRepos "github.com/yigit/dormitory/internal/app/repositories"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/auth"
)

// DefaultAdminUsername is the account created on first start
const DefaultAdminUsername = "admin"

// EnsureDefaultAdmin creates the admin account when no user named admin exists.
// It is safe to run on every start. While the admin still accepts the default
// password a warning is logged.
func EnsureDefaultAdmin(ctx context.Context, userRepo *appRepos.UserRepository, hasher *auth.PasswordHasher, defaultPassword string, lgr zerolog.Logger) (bool, error) {
	existing, err := userRepo.GetUserByUsername(ctx, DefaultAdminUsername)
	switch {
	case err == nil:
		if hasher.Verify(existing.PasswordHash, defaultPassword) {
			warnDefaultPassword(lgr)
		}
		return false, nil
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return false, fmt.Errorf("look up default admin: %w", err)
	}

	hash, err := hasher.Hash(defaultPassword)
	if err != nil {
		return false, fmt.Errorf("hash default admin password: %w", err)
	}

	_, err = userRepo.CreateUser(ctx, &appModels.User{
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		Role:         appAuth.RoleAdmin,
	})
	if err != nil {
		// Another process created it first
		if errors.Is(err, apperrors.ErrUsernameExists) {
			return false, nil
		}
		return false, fmt.Errorf("create default admin: %w", err)
	}

	lgr.Info().Str("username", DefaultAdminUsername).Msg("Default admin account created")
	warnDefaultPassword(lgr)
	return true, nil
}

func warnDefaultPassword(lgr zerolog.Logger) {
	lgr.Warn().
		Str("username", DefaultAdminUsername).
		Msg("Default admin password is well known; change it before exposing this service")
}
