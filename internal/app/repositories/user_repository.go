package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

// UserRepository is the credential store
type UserRepository struct {
	db *db.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *db.DB) *UserRepository {
	return &UserRepository{db: store}
}

// CreateUser inserts a user and returns its id
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query, args, err := r.db.Builder.Insert("users").
		Columns("username", "password_hash", "role").
		Values(user.Username, user.PasswordHash, string(user.Role)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(&id)
	})
	if err != nil {
		if translated := translateError(err, apperrors.ErrUsernameExists); translated != err {
			return 0, translated
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	return id, nil
}

// GetUserByUsername looks a user up by exact username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"username": username})
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getUser(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	query, args, err := r.db.Builder.Select("id", "username", "password_hash", "role").
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}
