package dto

// AddChargeRequest appends a charge; the period defaults to the current month
type AddChargeRequest struct {
	StudentID       int64    `json:"studentId" binding:"required,min=1"`
	Period          string   `json:"period"`
	Amount          *float64 `json:"amount" binding:"required"`
	BenefitDiscount float64  `json:"benefitDiscount"`
	Comment         string   `json:"comment"`
}

// AddPaymentRequest appends a payment; date defaults to today, method to transfer
type AddPaymentRequest struct {
	StudentID   int64    `json:"studentId" binding:"required,min=1"`
	PaymentDate string   `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	Amount      *float64 `json:"amount" binding:"required"`
	Method      string   `json:"method"`
	Comment     string   `json:"comment"`
}
