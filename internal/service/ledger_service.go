package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/lendfast/loan-ledger/internal/config"
	"github.com/lendfast/loan-ledger/internal/domain"
	"github.com/lendfast/loan-ledger/internal/repository"
	apperrors "github.com/lendfast/loan-ledger/pkg/errors"
	"github.com/lendfast/loan-ledger/pkg/utils"
)

// LedgerService is the loan accounting core. All state lives behind the
// injected repositories; derived figures (balance, EMIs left) are recomputed
// from the payment records on every read and never cached.
type LedgerService struct {
	CustomerRepo repository.CustomerRepository
	LoanRepo     repository.LoanRepository
	PaymentRepo  repository.PaymentRepository
	redis        *redis.Client
	config       *config.Config
}

func NewLedgerService(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *LedgerService {
	return &LedgerService{
		CustomerRepo: customerRepo,
		LoanRepo:     loanRepo,
		PaymentRepo:  paymentRepo,
		redis:        redisClient,
		config:       cfg,
	}
}

// CreateCustomer registers a new borrower.
func (s *LedgerService) CreateCustomer(ctx context.Context, request *domain.CreateCustomerRequest) (*domain.CreateCustomerResponse, error) {
	if request.Name == "" {
		return nil, apperrors.WrapValidation("name", errors.New("name is required"))
	}

	customer := &domain.Customer{
		ID:        uuid.New(),
		Name:      request.Name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.CustomerRepo.Create(ctx, customer); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return &domain.CreateCustomerResponse{
		CustomerID: customer.ID,
		Name:       customer.Name,
	}, nil
}

// CreateLoan validates the request, derives the repayment terms once, and
// persists the loan with status ACTIVE. The stored total payable and EMI are
// immutable from this point on.
func (s *LedgerService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.CreateLoanResponse, error) {
	if request.CustomerID == uuid.Nil {
		return nil, apperrors.WrapValidation("customer_id", apperrors.ErrMissingCustomerID)
	}
	if request.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WrapValidation("loan_amount", apperrors.ErrInvalidLoanAmount)
	}
	if request.TermYears <= 0 {
		return nil, apperrors.WrapValidation("duration_years", apperrors.ErrInvalidLoanTerm)
	}
	if request.InterestRate.IsNegative() {
		return nil, apperrors.WrapValidation("interest_rate", apperrors.ErrInvalidInterestRate)
	}

	totalPayable, monthlyEMI, err := utils.ComputeLoanTerms(request.Principal, request.TermYears, request.InterestRate)
	if err != nil {
		return nil, apperrors.WrapValidation("loan_amount", err)
	}

	loan := &domain.Loan{
		ID:           uuid.New(),
		CustomerID:   request.CustomerID,
		Principal:    request.Principal,
		InterestRate: request.InterestRate,
		TermYears:    request.TermYears,
		TotalPayable: totalPayable,
		MonthlyEMI:   monthlyEMI,
		Status:       domain.LoanStatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return &domain.CreateLoanResponse{
		LoanID:       loan.ID,
		CustomerID:   loan.CustomerID,
		TotalPayable: loan.TotalPayable,
		MonthlyEMI:   loan.MonthlyEMI,
	}, nil
}

// RecordPayment appends a payment to a loan's ledger and returns the balance
// derived from re-summing every payment, including the one just made.
// Overpayment is accepted: the balance goes negative and EMIs left clamps to
// zero. The loan record itself is never mutated.
func (s *LedgerService) RecordPayment(ctx context.Context, loanID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	if request.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WrapValidation("amount", apperrors.ErrInvalidPaymentAmount)
	}
	if request.PaymentType == "" {
		return nil, apperrors.WrapValidation("payment_type", apperrors.ErrMissingPaymentType)
	}

	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:          uuid.New(),
		LoanID:      loan.ID,
		Amount:      request.Amount,
		PaymentType: request.PaymentType,
		PaidAt:      time.Now().UTC(),
	}

	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	// The insert above is durable before this read, so the returned balance
	// always reflects the payment just recorded.
	paidSoFar, err := s.PaymentRepo.SumByLoanID(ctx, loan.ID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	balance := loan.TotalPayable.Sub(paidSoFar)

	return &domain.RecordPaymentResponse{
		PaymentID: payment.ID,
		Message:   "Payment Successful",
		Balance:   balance,
		EMIsLeft:  utils.EMIsLeft(balance, loan.MonthlyEMI),
	}, nil
}

// GetLedger returns a read-only snapshot of one loan: stored terms, every
// payment in insertion order, and the derived repayment state.
func (s *LedgerService) GetLedger(ctx context.Context, loanID uuid.UUID) (*domain.LedgerResponse, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByLoanID(ctx, loan.ID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	paidSoFar := decimal.Zero
	for _, payment := range payments {
		paidSoFar = paidSoFar.Add(payment.Amount)
	}

	balance := loan.TotalPayable.Sub(paidSoFar)

	return &domain.LedgerResponse{
		LoanID:       loan.ID,
		CustomerID:   loan.CustomerID,
		Principal:    loan.Principal,
		TotalPayable: loan.TotalPayable,
		MonthlyEMI:   loan.MonthlyEMI,
		Status:       loan.Status,
		PaidSoFar:    paidSoFar,
		Balance:      balance,
		EMIsLeft:     utils.EMIsLeft(balance, loan.MonthlyEMI),
		Payments:     payments,
	}, nil
}

// GetOverview aggregates ledger-derived figures across every loan owned by
// one customer. Per-loan sums are independent, so they run concurrently;
// the result keeps the loan fetch order.
func (s *LedgerService) GetOverview(ctx context.Context, customerID uuid.UUID) (*domain.OverviewResponse, error) {
	loans, err := s.LoanRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	if len(loans) == 0 {
		// A customer with zero loans is indistinguishable from an unknown
		// customer here.
		return nil, apperrors.WrapCustomerNotFound(customerID.String())
	}

	summaries := make([]*domain.LoanSummary, len(loans))

	g, gctx := errgroup.WithContext(ctx)
	for i, loan := range loans {
		g.Go(func() error {
			paid, err := s.PaymentRepo.SumByLoanID(gctx, loan.ID)
			if err != nil {
				return apperrors.WrapDatabaseError(err)
			}

			balance := loan.TotalPayable.Sub(paid)
			summaries[i] = &domain.LoanSummary{
				LoanID:       loan.ID,
				Principal:    loan.Principal,
				TotalPayable: loan.TotalPayable,
				Interest:     loan.InterestComponent(),
				MonthlyEMI:   loan.MonthlyEMI,
				AmountPaid:   paid,
				EMIsLeft:     utils.EMIsLeft(balance, loan.MonthlyEMI),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.OverviewResponse{
		CustomerID: customerID,
		TotalLoans: len(summaries),
		Loans:      summaries,
	}, nil
}

// SettlementReport recomputes every active loan's balance and logs the ones
// that are fully repaid. Loans are never transitioned out of ACTIVE, so this
// report is the only place payoff becomes visible operationally. Read-only.
func (s *LedgerService) SettlementReport(ctx context.Context) (int, error) {
	loans, err := s.LoanRepo.GetActive(ctx)
	if err != nil {
		return 0, apperrors.WrapDatabaseError(err)
	}

	settled := 0
	for _, loan := range loans {
		paid, err := s.PaymentRepo.SumByLoanID(ctx, loan.ID)
		if err != nil {
			return settled, apperrors.WrapDatabaseError(err)
		}

		balance := loan.TotalPayable.Sub(paid)
		if balance.LessThanOrEqual(decimal.Zero) {
			settled++
			log.Printf("loan %s fully repaid: total %s, paid %s",
				loan.ID, utils.FormatCurrency(loan.TotalPayable), utils.FormatCurrency(paid))
		}
	}

	return settled, nil
}

// getLoan fetches a loan, checking the Redis cache first. Loan terms are
// immutable after creation, so a cache hit can never be stale. Cache
// failures fall through to the database.
func (s *LedgerService) getLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	cacheKey := fmt.Sprintf("loan:%s", loanID)

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var loan domain.Loan
			if err := json.Unmarshal(data, &loan); err == nil {
				return &loan, nil
			}
		}
	}

	loan, err := s.LoanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapLoanNotFound(loanID.String())
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(loan); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, s.config.GetLoanCacheTTL()).Err(); err != nil {
				log.Printf("failed to cache loan %s: %v", loanID, err)
			}
		}
	}

	return loan, nil
}
