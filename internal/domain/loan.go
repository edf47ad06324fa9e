package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// LoanStatusActive is the only status the engine ever writes. A fully
	// repaid loan stays active; payoff is visible through its balance, not
	// through a status transition.
	LoanStatusActive = "ACTIVE"
)

// Loan represents a loan with flat simple interest. TotalPayable and
// MonthlyEMI are computed once at creation and stored immutably; they are
// never recomputed from mutated inputs.
type Loan struct {
	ID           uuid.UUID       `json:"loan_id" db:"id"`
	CustomerID   uuid.UUID       `json:"customer_id" db:"customer_id"`
	Principal    decimal.Decimal `json:"principal_amount" db:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	TermYears    int             `json:"term_years" db:"term_years"`
	TotalPayable decimal.Decimal `json:"total_amount" db:"total_payable"`
	MonthlyEMI   decimal.Decimal `json:"monthly_emi" db:"monthly_emi"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// InterestComponent returns the interest portion of the total payable.
func (l *Loan) InterestComponent() decimal.Decimal {
	return l.TotalPayable.Sub(l.Principal)
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	CustomerID   uuid.UUID       `json:"customer_id" validate:"required"`
	Principal    decimal.Decimal `json:"loan_amount" validate:"required"`
	TermYears    int             `json:"duration_years" validate:"required,gt=0"`
	InterestRate decimal.Decimal `json:"interest_rate"`
}

type CreateLoanResponse struct {
	LoanID       uuid.UUID       `json:"loan_id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	TotalPayable decimal.Decimal `json:"total_amount"`
	MonthlyEMI   decimal.Decimal `json:"monthly_emi"`
}

// LedgerResponse is a point-in-time snapshot of one loan: its stored terms,
// every payment recorded against it, and the derived repayment state.
type LedgerResponse struct {
	LoanID       uuid.UUID       `json:"loan_id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	Principal    decimal.Decimal `json:"principal_amount"`
	TotalPayable decimal.Decimal `json:"total_amount"`
	MonthlyEMI   decimal.Decimal `json:"monthly_emi"`
	Status       string          `json:"status"`
	PaidSoFar    decimal.Decimal `json:"amount_paid"`
	Balance      decimal.Decimal `json:"balance"`
	EMIsLeft     int64           `json:"emis_left"`
	Payments     []*Payment      `json:"payments"`
}

// LoanSummary is one entry of an account overview.
type LoanSummary struct {
	LoanID       uuid.UUID       `json:"loan_id"`
	Principal    decimal.Decimal `json:"principal"`
	TotalPayable decimal.Decimal `json:"total_amount"`
	Interest     decimal.Decimal `json:"interest"`
	MonthlyEMI   decimal.Decimal `json:"emi"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	EMIsLeft     int64           `json:"emis_left"`
}

type OverviewResponse struct {
	CustomerID uuid.UUID      `json:"customer_id"`
	TotalLoans int            `json:"total_loans"`
	Loans      []*LoanSummary `json:"loans"`
}
