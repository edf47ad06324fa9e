package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an append-only record of money received against a loan.
// Payments are never updated or deleted; a loan's amount paid is always
// the sum over its payments.
type Payment struct {
	ID          uuid.UUID       `json:"payment_id" db:"id"`
	LoanID      uuid.UUID       `json:"loan_id" db:"loan_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentType string          `json:"payment_type" db:"payment_type"`
	PaidAt      time.Time       `json:"payment_date" db:"paid_at"`
}

type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentType string          `json:"payment_type" validate:"required"`
}

type RecordPaymentResponse struct {
	PaymentID uuid.UUID       `json:"payment_id"`
	Message   string          `json:"message"`
	Balance   decimal.Decimal `json:"remaining_balance"`
	EMIsLeft  int64           `json:"emis_left"`
}
