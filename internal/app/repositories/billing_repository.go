package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/helpers"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

const (
	chargedSubquery  = "COALESCE((SELECT SUM(c.amount) FROM charges c WHERE c.student_id = s.id), 0.0)"
	discountSubquery = "COALESCE((SELECT SUM(c.benefit_discount) FROM charges c WHERE c.student_id = s.id), 0.0)"
	paidSubquery     = "COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.student_id = s.id), 0.0)"
)

// StudentTotals pairs a student with the summed sides of its ledger
type StudentTotals struct {
	StudentID   int64
	StudentName string
	models.LedgerTotals
}

// BillingRepository is the append-only charge and payment ledger
type BillingRepository struct {
	db *db.DB
}

// NewBillingRepository creates a new BillingRepository
func NewBillingRepository(store *db.DB) *BillingRepository {
	return &BillingRepository{db: store}
}

// InsertCharge appends a charge row
func (r *BillingRepository) InsertCharge(ctx context.Context, charge *models.Charge) (int64, error) {
	query, args, err := r.db.Builder.Insert("charges").
		Columns("student_id", "period", "amount", "benefit_discount", "comment").
		Values(charge.StudentID, charge.Period, charge.Amount, charge.BenefitDiscount, helpers.NullableString(charge.Comment)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert charge query: %w", err)
	}

	id, err := r.insert(ctx, query, args)
	if err != nil {
		if errors.Is(err, apperrors.ErrConstraintViolation) {
			return 0, err
		}
		logger.Error().Err(err).Int64("studentID", charge.StudentID).Msg("Error executing insert charge query")
		return 0, fmt.Errorf("error inserting charge: %w", err)
	}
	charge.ID = id
	return id, nil
}

// InsertPayment appends a payment row
func (r *BillingRepository) InsertPayment(ctx context.Context, payment *models.Payment) (int64, error) {
	query, args, err := r.db.Builder.Insert("payments").
		Columns("student_id", "payment_date", "amount", "method", "comment").
		Values(payment.StudentID, payment.PaymentDate, payment.Amount,
			helpers.NullableString(payment.Method), helpers.NullableString(payment.Comment)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert payment query: %w", err)
	}

	id, err := r.insert(ctx, query, args)
	if err != nil {
		if errors.Is(err, apperrors.ErrConstraintViolation) {
			return 0, err
		}
		logger.Error().Err(err).Int64("studentID", payment.StudentID).Msg("Error executing insert payment query")
		return 0, fmt.Errorf("error inserting payment: %w", err)
	}
	payment.ID = id
	return id, nil
}

func (r *BillingRepository) insert(ctx context.Context, query string, args []any) (int64, error) {
	var id int64
	err := r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(&id)
	})
	return id, translateError(err, nil)
}

// StudentTotals returns the ledger sums for one student
func (r *BillingRepository) StudentTotals(ctx context.Context, studentID int64) (*StudentTotals, error) {
	query, args, err := r.totalsQuery().
		Where(squirrel.Eq{"s.id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student totals query: %w", err)
	}

	t := &StudentTotals{}
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(&t.StudentID, &t.StudentName, &t.Charged, &t.Discount, &t.Paid)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning student totals")
		return nil, fmt.Errorf("error getting student totals: %w", err)
	}
	return t, nil
}

// AllStudentTotals returns ledger sums for every student in full name order
func (r *BillingRepository) AllStudentTotals(ctx context.Context) ([]*StudentTotals, error) {
	query, args, err := r.totalsQuery().
		OrderBy("s.full_name ASC", "s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build totals query: %w", err)
	}

	totals := []*StudentTotals{}
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t := &StudentTotals{}
			if err := rows.Scan(&t.StudentID, &t.StudentName, &t.Charged, &t.Discount, &t.Paid); err != nil {
				return err
			}
			totals = append(totals, t)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error querying student totals")
		return nil, fmt.Errorf("error querying student totals: %w", err)
	}
	return totals, nil
}

func (r *BillingRepository) totalsQuery() squirrel.SelectBuilder {
	return r.db.Builder.Select("s.id", "s.full_name").
		Column(chargedSubquery).
		Column(discountSubquery).
		Column(paidSubquery).
		From("students s")
}
