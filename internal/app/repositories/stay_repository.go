package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/helpers"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

// StayRepository handles stay database operations
type StayRepository struct {
	db *db.DB
}

// NewStayRepository creates a new StayRepository
func NewStayRepository(store *db.DB) *StayRepository {
	return &StayRepository{db: store}
}

// InsertStay inserts an open stay using tx and returns its id
func (r *StayRepository) InsertStay(ctx context.Context, tx db.Querier, stay *models.Stay) (int64, error) {
	query, args, err := r.db.Builder.Insert("stays").
		Columns("student_id", "room_id", "checkin_date").
		Values(stay.StudentID, stay.RoomID, stay.CheckinDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert stay query: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		// The partial unique index on open stays backs up the service check
		if translated := translateError(err, apperrors.ErrAlreadyCheckedIn); translated != err {
			return 0, translated
		}
		logger.Error().Err(err).Int64("studentID", stay.StudentID).Int64("roomID", stay.RoomID).Msg("Error executing insert stay query")
		return 0, fmt.Errorf("error inserting stay: %w", err)
	}

	stay.ID = id
	return id, nil
}

// HasOpenStay reports whether the student currently holds an open stay, using q
func (r *StayRepository) HasOpenStay(ctx context.Context, q db.Querier, studentID int64) (bool, error) {
	query, args, err := r.db.Builder.Select("COUNT(*)").
		From("stays").
		Where(squirrel.Eq{"student_id": studentID, "checkout_date": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build open stay query: %w", err)
	}

	var count int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking open stay: %w", err)
	}
	return count > 0, nil
}

// CloseStay sets the checkout fields. Repeating it overwrites them.
func (r *StayRepository) CloseStay(ctx context.Context, stayID int64, date string, reason string) error {
	query, args, err := r.db.Builder.Update("stays").
		Set("checkout_date", date).
		Set("checkout_reason", helpers.NullableString(reason)).
		Where(squirrel.Eq{"id": stayID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build close stay query: %w", err)
	}

	var affected int64
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		logger.Error().Err(err).Int64("stayID", stayID).Msg("Error executing close stay query")
		return fmt.Errorf("error closing stay: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStayNotFound
	}
	return nil
}

// GetStayByID retrieves a stay by ID
func (r *StayRepository) GetStayByID(ctx context.Context, id int64) (*models.Stay, error) {
	query, args, err := r.db.Builder.Select("id", "student_id", "room_id", "checkin_date", "checkout_date", "checkout_reason").
		From("stays").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get stay query: %w", err)
	}

	stay := &models.Stay{}
	var checkoutDate, checkoutReason sql.NullString
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(&stay.ID, &stay.StudentID, &stay.RoomID,
			&stay.CheckinDate, &checkoutDate, &checkoutReason)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrStayNotFound
		}
		logger.Error().Err(err).Int64("stayID", id).Msg("Error scanning stay row")
		return nil, fmt.Errorf("error getting stay by ID: %w", err)
	}
	stay.CheckoutDate = helpers.StringPtr(checkoutDate)
	stay.CheckoutReason = helpers.StringPtr(checkoutReason)
	return stay, nil
}

// ListOpenStays returns open stays newest check-in first, joined with student and room
func (r *StayRepository) ListOpenStays(ctx context.Context) ([]*models.OpenStay, error) {
	query, args, err := r.db.Builder.Select(
		"st.id", "st.student_id", "s.full_name", "st.room_id", "r.building", "r.room_number", "st.checkin_date").
		From("stays st").
		Join("students s ON s.id = st.student_id").
		Join("rooms r ON r.id = st.room_id").
		Where(squirrel.Eq{"st.checkout_date": nil}).
		OrderBy("st.checkin_date DESC", "st.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list open stays query: %w", err)
	}

	stays := []*models.OpenStay{}
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			s := &models.OpenStay{}
			if err := rows.Scan(&s.StayID, &s.StudentID, &s.StudentName, &s.RoomID,
				&s.Building, &s.RoomNumber, &s.CheckinDate); err != nil {
				return err
			}
			stays = append(stays, s)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error querying open stays")
		return nil, fmt.Errorf("error querying open stays: %w", err)
	}
	return stays, nil
}
