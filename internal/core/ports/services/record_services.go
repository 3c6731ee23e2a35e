package services

import (
	"context"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// RecordSvcFacade defines the write side of the ledger: sales, payments and
// expenses. Every mutation invalidates the report caches that depend on it.
type RecordSvcFacade interface {
	CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	UpdateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	DeleteSale(ctx context.Context, saleID string) error
	ListSales(ctx context.Context, storeID string) ([]domain.Sale, error)

	CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
	ListPayments(ctx context.Context, storeID string) ([]domain.Payment, error)

	CreateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}

// StoreSvcFacade manages the reseller stores.
type StoreSvcFacade interface {
	CreateStore(ctx context.Context, store domain.Store) (*domain.Store, error)
	UpdateStore(ctx context.Context, store domain.Store) (*domain.Store, error)

	// DeleteStore removes the store together with its sales and payments.
	DeleteStore(ctx context.Context, storeID string) error

	GetStore(ctx context.Context, storeID string) (*domain.Store, error)
	ListStores(ctx context.Context) ([]domain.Store, error)
}

// PartnerSvcFacade manages the partner setup and withdrawals.
type PartnerSvcFacade interface {
	GetPartnersConfig(ctx context.Context) (*domain.PartnersConfig, error)
	SavePartnersConfig(ctx context.Context, cfg domain.PartnersConfig) (*domain.PartnersConfig, error)
	AddAdjustment(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error)
	DeleteAdjustment(ctx context.Context, adjustmentID string) error
}
