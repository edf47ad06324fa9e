package utils

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/lendfast/loan-ledger/pkg/errors"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// ComputeLoanTerms derives the repayment terms for a flat simple-interest
// loan.
// Formula: interest = P * N * (R / 100); totalPayable = P + interest;
// monthlyEMI = totalPayable / (N * 12), rounded to 2 decimal places.
// The inputs are validated here as well as at the request boundary, since
// termYears <= 0 would otherwise divide by zero.
func ComputeLoanTerms(principal decimal.Decimal, termYears int, annualRatePercent decimal.Decimal) (totalPayable, monthlyEMI decimal.Decimal, err error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, apperrors.ErrInvalidLoanAmount
	}
	if termYears <= 0 {
		return decimal.Zero, decimal.Zero, apperrors.ErrInvalidLoanTerm
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, decimal.Zero, apperrors.ErrInvalidInterestRate
	}

	years := decimal.NewFromInt(int64(termYears))
	interest := principal.Mul(years).Mul(annualRatePercent.Div(hundred))
	totalPayable = principal.Add(interest)
	monthlyEMI = totalPayable.Div(years.Mul(monthsPerYear)).Round(2)

	return totalPayable, monthlyEMI, nil
}

// EMIsLeft returns the minimum number of further fixed payments needed to
// clear the balance at the given EMI, never less than zero. An overpaid
// loan (negative balance) therefore reports zero EMIs left.
func EMIsLeft(balance, emi decimal.Decimal) int64 {
	if emi.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	left := balance.Div(emi).Ceil().IntPart()
	if left < 0 {
		return 0
	}
	return left
}
