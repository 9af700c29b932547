package models

// Payment methods offered by default; other values are stored as given
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Charge is an append-only ledger entry for money owed
type Charge struct {
	ID              int64   `json:"id" db:"id"`
	StudentID       int64   `json:"studentId" db:"student_id"`
	Period          string  `json:"period" db:"period"`
	Amount          float64 `json:"amount" db:"amount"`
	BenefitDiscount float64 `json:"benefitDiscount" db:"benefit_discount"`
	Comment         string  `json:"comment,omitempty" db:"comment"`
}

// Payment is an append-only ledger entry for money received
type Payment struct {
	ID          int64   `json:"id" db:"id"`
	StudentID   int64   `json:"studentId" db:"student_id"`
	PaymentDate string  `json:"paymentDate" db:"payment_date"`
	Amount      float64 `json:"amount" db:"amount"`
	Method      string  `json:"method,omitempty" db:"method"`
	Comment     string  `json:"comment,omitempty" db:"comment"`
}

// LedgerTotals are the summed ledger sides for one student
type LedgerTotals struct {
	Charged  float64
	Discount float64
	Paid     float64
}

// Balance is charges minus discounts minus payments; positive means debt
func (t LedgerTotals) Balance() float64 {
	return t.Charged - t.Discount - t.Paid
}

// StudentBalance is the computed ledger state of one student
type StudentBalance struct {
	StudentID int64   `json:"studentId"`
	Charged   float64 `json:"charged"`
	Discount  float64 `json:"discount"`
	Paid      float64 `json:"paid"`
	Balance   float64 `json:"balance"`
}

// Debtor is one row of the debtors report
type Debtor struct {
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName"`
	Debt        float64 `json:"debt"`
}
