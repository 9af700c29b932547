package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	appAuth "github.com/yigit/dormitory/internal/app/auth"
	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/app/repositories"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/auth"
)

// AuthService checks credentials and issues session tokens
type AuthService struct {
	userRepo   *repositories.UserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Authenticate returns the identity for an exact username and matching password.
// An unknown username and a wrong password fail with the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.Identity, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return models.Identity{}, apperrors.ErrInvalidCredentials
		}
		return models.Identity{}, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		s.logger.Debug().Str("username", username).Msg("Password mismatch")
		return models.Identity{}, apperrors.ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// Login authenticates and issues an access token for the identity
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identity, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateToken(identity.ID, identity.Username, string(identity.Role))
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", identity.ID).Msg("Failed to generate access token")
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Int64("userID", identity.ID).Str("role", string(identity.Role)).Msg("User logged in")
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: DescribeIdentity(identity),
	}, nil
}

// CreateUser adds a user with a hashed password
func (s *AuthService) CreateUser(ctx context.Context, username, password, role string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, apperrors.NewValidationError("username", "username cannot be empty")
	}
	if password == "" {
		return 0, apperrors.NewValidationError("password", "password cannot be empty")
	}
	parsed, ok := appAuth.ParseRole(role)
	if !ok {
		return 0, apperrors.NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := s.userRepo.CreateUser(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         parsed,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("userID", id).Str("username", username).Str("role", role).Msg("User created")
	return id, nil
}

// Resolve reloads the identity behind a token so role changes and removed
// accounts take effect before the token expires
func (s *AuthService) Resolve(ctx context.Context, userID int64) (models.Identity, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return models.Identity{}, apperrors.ErrTokenInvalid
		}
		return models.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}
	return user.Identity(), nil
}

// DescribeIdentity lists the modules an identity may open
func DescribeIdentity(identity models.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:       identity.ID,
		Username: identity.Username,
		Role:     identity.Role,
		Modules:  appAuth.ModulesFor(identity.Role),
	}
}
