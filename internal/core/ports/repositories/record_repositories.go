package repositories

import (
	"context"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// SaleReader defines read operations for sale records
type SaleReader interface {
	// FindSaleByID retrieves a specific sale by its ID.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindSales retrieves all sales, optionally scoped to one store.
	// An empty storeID means all stores.
	FindSales(ctx context.Context, storeID string) ([]domain.Sale, error)
}

// SaleWriter defines write operations for sale records
type SaleWriter interface {
	// SaveSale persists a new sale.
	SaveSale(ctx context.Context, sale domain.Sale) error

	// UpdateSale updates an existing sale.
	UpdateSale(ctx context.Context, sale domain.Sale) error

	// DeleteSale removes a sale.
	DeleteSale(ctx context.Context, saleID string) error
}

// SaleRepositoryFacade combines all sale repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}

// PaymentReader defines read operations for payment records
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPayments retrieves all payments, optionally scoped to one store.
	FindPayments(ctx context.Context, storeID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment records
type PaymentWriter interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
	UpdatePayment(ctx context.Context, payment domain.Payment) error
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// ExpenseReader defines read operations for expense records
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	FindExpenses(ctx context.Context) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense records
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// StoreReader defines read operations for stores
type StoreReader interface {
	FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error)
	FindStores(ctx context.Context) ([]domain.Store, error)
}

// StoreWriter defines write operations for stores
type StoreWriter interface {
	SaveStore(ctx context.Context, store domain.Store) error
	UpdateStore(ctx context.Context, store domain.Store) error

	// DeleteStore removes a store and, in the same transaction, every sale
	// and payment that references it.
	DeleteStore(ctx context.Context, storeID string) error
}

// StoreRepositoryFacade combines all store repository interfaces
type StoreRepositoryFacade interface {
	StoreReader
	StoreWriter
}

// RecordDatesReader reports the earliest record date across sales, payments
// and expenses. Used to anchor the from_start period.
type RecordDatesReader interface {
	FindEarliestRecordDate(ctx context.Context) (time.Time, bool, error)
}
