package dto

import (
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// CreateSaleRequest defines the data needed to record a sale.
type CreateSaleRequest struct {
	StoreID    string  `json:"storeID" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	PackageRef string  `json:"packageRef"`
	Quantity   int     `json:"quantity" binding:"omitempty,min=1"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Notes      string  `json:"notes"`
}

// UpdateSaleRequest defines the data allowed when editing a sale. The owning
// store can not change.
type UpdateSaleRequest struct {
	Date       string  `json:"date" binding:"required"`
	PackageRef string  `json:"packageRef"`
	Quantity   int     `json:"quantity" binding:"omitempty,min=1"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Notes      string  `json:"notes"`
}

// SaleResponse mirrors domain.Sale.
type SaleResponse struct {
	SaleID     string    `json:"saleID"`
	StoreID    string    `json:"storeID"`
	Date       string    `json:"date"`
	PackageRef string    `json:"packageRef,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	Amount     float64   `json:"amount"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r CreateSaleRequest) ToDomain() domain.Sale {
	return domain.Sale{
		StoreID:    r.StoreID,
		Date:       r.Date,
		PackageRef: r.PackageRef,
		Quantity:   r.Quantity,
		Amount:     r.Amount,
		Notes:      r.Notes,
	}
}

func (r UpdateSaleRequest) ToDomain(saleID string) domain.Sale {
	return domain.Sale{
		SaleID:     saleID,
		Date:       r.Date,
		PackageRef: r.PackageRef,
		Quantity:   r.Quantity,
		Amount:     r.Amount,
		Notes:      r.Notes,
	}
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:     s.SaleID,
		StoreID:    s.StoreID,
		Date:       s.Date,
		PackageRef: s.PackageRef,
		Quantity:   s.Quantity,
		Amount:     s.Amount,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
}

func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}

// CreatePaymentRequest defines the data needed to record a payment.
type CreatePaymentRequest struct {
	StoreID string  `json:"storeID" binding:"required"`
	Date    string  `json:"date" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Method  string  `json:"method"`
	Notes   string  `json:"notes"`
}

// UpdatePaymentRequest defines the data allowed when editing a payment.
type UpdatePaymentRequest struct {
	Date   string  `json:"date" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method"`
	Notes  string  `json:"notes"`
}

// PaymentResponse mirrors domain.Payment.
type PaymentResponse struct {
	PaymentID string    `json:"paymentID"`
	StoreID   string    `json:"storeID"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r CreatePaymentRequest) ToDomain() domain.Payment {
	return domain.Payment{
		StoreID: r.StoreID,
		Date:    r.Date,
		Amount:  r.Amount,
		Method:  r.Method,
		Notes:   r.Notes,
	}
}

func (r UpdatePaymentRequest) ToDomain(paymentID string) domain.Payment {
	return domain.Payment{
		PaymentID: paymentID,
		Date:      r.Date,
		Amount:    r.Amount,
		Method:    r.Method,
		Notes:     r.Notes,
	}
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		StoreID:   p.StoreID,
		Date:      p.Date,
		Amount:    p.Amount,
		Method:    p.Method,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	Date     string  `json:"date" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Type     string  `json:"type" binding:"required"`
	AddLater bool    `json:"addLater"`
	Notes    string  `json:"notes"`
}

// UpdateExpenseRequest defines the data allowed when editing an expense.
type UpdateExpenseRequest struct {
	Date     string  `json:"date" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Type     string  `json:"type" binding:"required"`
	AddLater bool    `json:"addLater"`
	Notes    string  `json:"notes"`
}

// ExpenseResponse mirrors domain.Expense.
type ExpenseResponse struct {
	ExpenseID string    `json:"expenseID"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	AddLater  bool      `json:"addLater"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r CreateExpenseRequest) ToDomain() domain.Expense {
	return domain.Expense{
		Date:     r.Date,
		Amount:   r.Amount,
		Type:     r.Type,
		AddLater: r.AddLater,
		Notes:    r.Notes,
	}
}

func (r UpdateExpenseRequest) ToDomain(expenseID string) domain.Expense {
	return domain.Expense{
		ExpenseID: expenseID,
		Date:      r.Date,
		Amount:    r.Amount,
		Type:      r.Type,
		AddLater:  r.AddLater,
		Notes:     r.Notes,
	}
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID: e.ExpenseID,
		Date:      e.Date,
		Amount:    e.Amount,
		Type:      e.Type,
		AddLater:  e.AddLater,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
