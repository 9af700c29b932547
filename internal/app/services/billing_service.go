package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/repositories"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/helpers"
)

// BillingService defines the ledger operations
type BillingService interface {
	AddCharge(ctx context.Context, charge *models.Charge) (int64, error)
	AddPayment(ctx context.Context, payment *models.Payment) (int64, error)
	Balance(ctx context.Context, studentID int64) (*models.StudentBalance, error)
	DebtorsReport(ctx context.Context) ([]models.Debtor, error)
}

type billingServiceImpl struct {
	billingRepo *repositories.BillingRepository
	logger      zerolog.Logger
}

// NewBillingService creates a new billing service instance
func NewBillingService(billingRepo *repositories.BillingRepository, logger zerolog.Logger) BillingService {
	return &billingServiceImpl{
		billingRepo: billingRepo,
		logger:      logger,
	}
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.NewValidationError(field, field+" must be a finite number")
	}
	return nil
}

// AddCharge appends a charge. Negative amounts are accepted and act as credits.
func (s *billingServiceImpl) AddCharge(ctx context.Context, charge *models.Charge) (int64, error) {
	if charge == nil || charge.StudentID <= 0 {
		return 0, apperrors.NewValidationError("studentId", "student id is required")
	}
	charge.Period = strings.TrimSpace(charge.Period)
	if charge.Period == "" {
		charge.Period = helpers.CurrentPeriod()
	}
	if err := finite("amount", charge.Amount); err != nil {
		return 0, err
	}
	if err := finite("benefitDiscount", charge.BenefitDiscount); err != nil {
		return 0, err
	}

	id, err := s.billingRepo.InsertCharge(ctx, charge)
	if err != nil {
		return 0, fmt.Errorf("add charge: %w", err)
	}

	s.logger.Info().Int64("chargeID", id).Int64("studentID", charge.StudentID).Str("period", charge.Period).
		Float64("amount", charge.Amount).Float64("discount", charge.BenefitDiscount).Msg("Charge added")
	return id, nil
}

// AddPayment appends a payment; the date defaults to today and the method to transfer
func (s *billingServiceImpl) AddPayment(ctx context.Context, payment *models.Payment) (int64, error) {
	if payment == nil || payment.StudentID <= 0 {
		return 0, apperrors.NewValidationError("studentId", "student id is required")
	}
	date, err := resolveDate("paymentDate", payment.PaymentDate)
	if err != nil {
		return 0, err
	}
	payment.PaymentDate = date
	payment.Method = strings.TrimSpace(payment.Method)
	if payment.Method == "" {
		payment.Method = models.PaymentMethodTransfer
	}
	if err := finite("amount", payment.Amount); err != nil {
		return 0, err
	}

	id, err := s.billingRepo.InsertPayment(ctx, payment)
	if err != nil {
		return 0, fmt.Errorf("add payment: %w", err)
	}

	s.logger.Info().Int64("paymentID", id).Int64("studentID", payment.StudentID).
		Float64("amount", payment.Amount).Str("method", payment.Method).Msg("Payment added")
	return id, nil
}

// Balance returns charges minus discounts minus payments for one student
func (s *billingServiceImpl) Balance(ctx context.Context, studentID int64) (*models.StudentBalance, error) {
	if studentID <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	totals, err := s.billingRepo.StudentTotals(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &models.StudentBalance{
		StudentID: totals.StudentID,
		Charged:   helpers.RoundAmount(totals.Charged),
		Discount:  helpers.RoundAmount(totals.Discount),
		Paid:      helpers.RoundAmount(totals.Paid),
		Balance:   helpers.RoundAmount(totals.Balance()),
	}, nil
}

// DebtorsReport lists students in full name order whose balance, rounded to
// cents, is strictly positive.
func (s *billingServiceImpl) DebtorsReport(ctx context.Context) ([]models.Debtor, error) {
	totals, err := s.billingRepo.AllStudentTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("debtors report: %w", err)
	}

	debtors := []models.Debtor{}
	for _, t := range totals {
		debt := helpers.RoundAmount(t.Balance())
		if debt <= 0 {
			continue
		}
		debtors = append(debtors, models.Debtor{
			StudentID:   t.StudentID,
			StudentName: t.StudentName,
			Debt:        debt,
		})
	}
	return debtors, nil
}
