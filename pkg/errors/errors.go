package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrCustomerNotFound     = errors.New("no loans found for customer")
	ErrInvalidLoanAmount    = errors.New("loan amount must be greater than zero")
	ErrInvalidLoanTerm      = errors.New("loan term must be a positive number of years")
	ErrInvalidInterestRate  = errors.New("interest rate must not be negative")
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")
	ErrMissingPaymentType   = errors.New("payment type is required")
	ErrMissingCustomerID    = errors.New("customer id is required")
)

// BusinessError represents a ledger failure with a stable error code.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeLoanNotFound     = "LOAN_NOT_FOUND"
	ErrCodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// IsValidation reports whether err is a client-caused validation failure.
func IsValidation(err error) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Code == ErrCodeValidation
}

// IsNotFound reports whether err means a referenced loan or customer
// does not exist.
func IsNotFound(err error) bool {
	var be *BusinessError
	if !errors.As(err, &be) {
		return false
	}
	return be.Code == ErrCodeLoanNotFound || be.Code == ErrCodeCustomerNotFound
}

// Wrap common errors with business context

func WrapValidation(field string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("invalid field %q", field),
		err,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapCustomerNotFound(customerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCustomerNotFound,
		fmt.Sprintf("No loans found for customer %s", customerID),
		ErrCustomerNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
