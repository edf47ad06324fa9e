package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a borrower. Customers are created once and never
// updated or deleted; loans reference them by ID.
type Customer struct {
	ID        uuid.UUID `json:"customer_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateCustomerResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
}
