package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/app/services"
	"github.com/yigit/dormitory/internal/middleware"
)

// FinanceController appends ledger entries and serves the debtors report
type FinanceController struct {
	billingService services.BillingService
}

// NewFinanceController creates a new FinanceController
func NewFinanceController(billingService services.BillingService) *FinanceController {
	return &FinanceController{billingService: billingService}
}

// AddCharge handles charge creation
// @Summary Add charge
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddChargeRequest true "Charge"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Router /charges [post]
func (c *FinanceController) AddCharge(ctx *gin.Context) {
	var req dto.AddChargeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	id, err := c.billingService.AddCharge(ctx.Request.Context(), &models.Charge{
		StudentID:       req.StudentID,
		Period:          req.Period,
		Amount:          *req.Amount,
		BenefitDiscount: req.BenefitDiscount,
		Comment:         req.Comment,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}, "Charge added"))
}

// AddPayment handles payment creation
// @Summary Add payment
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddPaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Router /payments [post]
func (c *FinanceController) AddPayment(ctx *gin.Context) {
	var req dto.AddPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	id, err := c.billingService.AddPayment(ctx.Request.Context(), &models.Payment{
		StudentID:   req.StudentID,
		PaymentDate: req.PaymentDate,
		Amount:      *req.Amount,
		Method:      req.Method,
		Comment:     req.Comment,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}, "Payment added"))
}

// Debtors lists students with a positive balance
// @Summary Debtors report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Debtor}
// @Router /reports/debtors [get]
func (c *FinanceController) Debtors(ctx *gin.Context) {
	debtors, err := c.billingService.DebtorsReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if debtors == nil {
		debtors = []models.Debtor{}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(debtors, ""))
}
