package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lendfast/loan-ledger/internal/domain"
	"github.com/lendfast/loan-ledger/internal/handler"
	apperrors "github.com/lendfast/loan-ledger/pkg/errors"
)

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) CreateCustomer(ctx context.Context, request *domain.CreateCustomerRequest) (*domain.CreateCustomerResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateCustomerResponse), args.Error(1)
}

func (m *mockLedgerService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.CreateLoanResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateLoanResponse), args.Error(1)
}

func (m *mockLedgerService) RecordPayment(ctx context.Context, loanID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	args := m.Called(ctx, loanID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPaymentResponse), args.Error(1)
}

func (m *mockLedgerService) GetLedger(ctx context.Context, loanID uuid.UUID) (*domain.LedgerResponse, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerResponse), args.Error(1)
}

func (m *mockLedgerService) GetOverview(ctx context.Context, customerID uuid.UUID) (*domain.OverviewResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OverviewResponse), args.Error(1)
}

func newRouter(svc handler.LedgerService) *mux.Router {
	h := handler.NewLedgerHandler(svc)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/customers", h.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers/{customerId}/overview", h.GetOverview).Methods("GET")
	api.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/payments", h.RecordPayment).Methods("POST")
	api.HandleFunc("/loans/{loanId}/ledger", h.GetLedger).Methods("GET")

	return router
}

func doJSON(router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLedgerHandler_CreateLoan(t *testing.T) {
	customerID := uuid.New()
	loanID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mockLedgerService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful loan creation",
			requestBody: map[string]interface{}{
				"customer_id":    customerID,
				"loan_amount":    100000,
				"duration_years": 5,
				"interest_rate":  10,
			},
			setupMock: func(svc *mockLedgerService) {
				svc.On("CreateLoan", mock.Anything, mock.MatchedBy(func(req *domain.CreateLoanRequest) bool {
					return req.CustomerID == customerID &&
						req.Principal.Equal(decimal.NewFromInt(100000)) &&
						req.TermYears == 5
				})).Return(&domain.CreateLoanResponse{
					LoanID:       loanID,
					CustomerID:   customerID,
					TotalPayable: decimal.NewFromInt(150000),
					MonthlyEMI:   decimal.NewFromInt(2500),
				}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var wrapper struct {
					Success bool                      `json:"success"`
					Data    domain.CreateLoanResponse `json:"data"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
				assert.True(t, wrapper.Success)
				assert.Equal(t, loanID, wrapper.Data.LoanID)
				assert.True(t, wrapper.Data.TotalPayable.Equal(decimal.NewFromInt(150000)))
				assert.True(t, wrapper.Data.MonthlyEMI.Equal(decimal.NewFromInt(2500)))
			},
		},
		{
			name: "validation error from engine maps to 400",
			requestBody: map[string]interface{}{
				"customer_id":    customerID,
				"loan_amount":    -5,
				"duration_years": 5,
				"interest_rate":  10,
			},
			setupMock: func(svc *mockLedgerService) {
				svc.On("CreateLoan", mock.Anything, mock.Anything).
					Return(nil, apperrors.WrapValidation("loan_amount", apperrors.ErrInvalidLoanAmount)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var errResp struct {
					Success bool   `json:"success"`
					Code    string `json:"code"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				assert.False(t, errResp.Success)
				assert.Equal(t, apperrors.ErrCodeValidation, errResp.Code)
			},
		},
		{
			name:           "malformed body maps to 400",
			requestBody:    "not-json",
			setupMock:      func(svc *mockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, w *httptest.ResponseRecorder) {},
		},
		{
			name: "storage error maps to 500",
			requestBody: map[string]interface{}{
				"customer_id":    customerID,
				"loan_amount":    100000,
				"duration_years": 5,
				"interest_rate":  10,
			},
			setupMock: func(svc *mockLedgerService) {
				svc.On("CreateLoan", mock.Anything, mock.Anything).
					Return(nil, apperrors.WrapDatabaseError(assert.AnError)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			checkResponse:  func(t *testing.T, w *httptest.ResponseRecorder) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockLedgerService{}
			tt.setupMock(svc)

			router := newRouter(svc)
			w := doJSON(router, http.MethodPost, "/api/v1/loans", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, w)
			svc.AssertExpectations(t)
		})
	}
}

func TestLedgerHandler_RecordPayment(t *testing.T) {
	loanID := uuid.New()
	paymentID := uuid.New()

	t.Run("successful payment", func(t *testing.T) {
		svc := &mockLedgerService{}
		svc.On("RecordPayment", mock.Anything, loanID, mock.MatchedBy(func(req *domain.RecordPaymentRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(2500)) && req.PaymentType == "EMI"
		})).Return(&domain.RecordPaymentResponse{
			PaymentID: paymentID,
			Message:   "Payment Successful",
			Balance:   decimal.NewFromInt(147500),
			EMIsLeft:  59,
		}, nil).Once()

		router := newRouter(svc)
		w := doJSON(router, http.MethodPost, "/api/v1/loans/"+loanID.String()+"/payments",
			map[string]interface{}{"amount": 2500, "payment_type": "EMI"})

		assert.Equal(t, http.StatusOK, w.Code)

		var wrapper struct {
			Data domain.RecordPaymentResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
		assert.Equal(t, paymentID, wrapper.Data.PaymentID)
		assert.True(t, wrapper.Data.Balance.Equal(decimal.NewFromInt(147500)))
		assert.Equal(t, int64(59), wrapper.Data.EMIsLeft)
		svc.AssertExpectations(t)
	})

	t.Run("unknown loan maps to 404", func(t *testing.T) {
		svc := &mockLedgerService{}
		svc.On("RecordPayment", mock.Anything, loanID, mock.Anything).
			Return(nil, apperrors.WrapLoanNotFound(loanID.String())).Once()

		router := newRouter(svc)
		w := doJSON(router, http.MethodPost, "/api/v1/loans/"+loanID.String()+"/payments",
			map[string]interface{}{"amount": 2500, "payment_type": "EMI"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing payment type never reaches the engine", func(t *testing.T) {
		svc := &mockLedgerService{}

		router := newRouter(svc)
		w := doJSON(router, http.MethodPost, "/api/v1/loans/"+loanID.String()+"/payments",
			map[string]interface{}{"amount": 2500})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed loan id maps to 400", func(t *testing.T) {
		svc := &mockLedgerService{}

		router := newRouter(svc)
		w := doJSON(router, http.MethodPost, "/api/v1/loans/not-a-uuid/payments",
			map[string]interface{}{"amount": 2500, "payment_type": "EMI"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLedgerHandler_GetLedger(t *testing.T) {
	loanID := uuid.New()
	customerID := uuid.New()

	t.Run("returns full snapshot", func(t *testing.T) {
		svc := &mockLedgerService{}
		svc.On("GetLedger", mock.Anything, loanID).Return(&domain.LedgerResponse{
			LoanID:       loanID,
			CustomerID:   customerID,
			Principal:    decimal.NewFromInt(100000),
			TotalPayable: decimal.NewFromInt(150000),
			MonthlyEMI:   decimal.NewFromInt(2500),
			Status:       domain.LoanStatusActive,
			PaidSoFar:    decimal.NewFromInt(2500),
			Balance:      decimal.NewFromInt(147500),
			EMIsLeft:     59,
			Payments: []*domain.Payment{
				{ID: uuid.New(), LoanID: loanID, Amount: decimal.NewFromInt(2500), PaymentType: "EMI"},
			},
		}, nil).Once()

		router := newRouter(svc)
		w := doJSON(router, http.MethodGet, "/api/v1/loans/"+loanID.String()+"/ledger", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var wrapper struct {
			Data domain.LedgerResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
		assert.Equal(t, loanID, wrapper.Data.LoanID)
		assert.Len(t, wrapper.Data.Payments, 1)
		assert.Equal(t, int64(59), wrapper.Data.EMIsLeft)
		svc.AssertExpectations(t)
	})

	t.Run("unknown loan maps to 404", func(t *testing.T) {
		svc := &mockLedgerService{}
		svc.On("GetLedger", mock.Anything, loanID).
			Return(nil, apperrors.WrapLoanNotFound(loanID.String())).Once()

		router := newRouter(svc)
		w := doJSON(router, http.MethodGet, "/api/v1/loans/"+loanID.String()+"/ledger", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestLedgerHandler_GetOverview(t *testing.T) {
	customerID := uuid.New()

	t.Run("returns per-loan summaries", func(t *testing.T) {
		svc := &mockLedgerService{}
		svc.On("GetOverview", mock.Anything, customerID).Return(&domain.OverviewResponse{
			CustomerID: customerID,
			TotalLoans: 2,
			Loans: []*domain.LoanSummary{
				{LoanID: uuid.New(), AmountPaid: decimal.NewFromInt(2500), EMIsLeft: 59},
				{LoanID: uuid.New(), AmountPaid: decimal.Zero, EMIsLeft: 24},
			},
		}, nil).Once()

		router := newRouter(svc)
		w := doJSON(router, http.MethodGet, "/api/v1/customers/"+customerID.String()+"/overview", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var wrapper struct {
			Data domain.OverviewResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
		assert.Equal(t, 2, wrapper.Data.TotalLoans)
		assert.Len(t, wrapper.Data.Loans, 2)
		svc.AssertExpectations(t)
	})

	t.Run("customer without loans maps to 404", func(t *testing.T) {
		svc := &mockLedgerService{}
		svc.On("GetOverview", mock.Anything, customerID).
			Return(nil, apperrors.WrapCustomerNotFound(customerID.String())).Once()

		router := newRouter(svc)
		w := doJSON(router, http.MethodGet, "/api/v1/customers/"+customerID.String()+"/overview", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestLedgerHandler_CreateCustomer(t *testing.T) {
	customerID := uuid.New()

	t.Run("successful registration", func(t *testing.T) {
		svc := &mockLedgerService{}
		svc.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(req *domain.CreateCustomerRequest) bool {
			return req.Name == "Ada"
		})).Return(&domain.CreateCustomerResponse{CustomerID: customerID, Name: "Ada"}, nil).Once()

		router := newRouter(svc)
		w := doJSON(router, http.MethodPost, "/api/v1/customers", map[string]interface{}{"name": "Ada"})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing name rejected before the engine", func(t *testing.T) {
		svc := &mockLedgerService{}

		router := newRouter(svc)
		w := doJSON(router, http.MethodPost, "/api/v1/customers", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})
}
