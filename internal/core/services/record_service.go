package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/pkg/cache"
	"github.com/google/uuid"
)

// recordService implements the RecordSvcFacade interface. Every mutation
// ends with a tag invalidation so cached reports can never serve numbers
// the ledger no longer agrees with.
type recordService struct {
	BaseService
	repos portsrepo.RepositoryProvider
	cache cache.Cache
	now   func() time.Time
}

// RecordServiceOption is a functional option for configuring the record service
type RecordServiceOption func(*recordService)

// WithRecordCache sets the cache whose report entries mutations invalidate.
func WithRecordCache(c cache.Cache) RecordServiceOption {
	return func(s *recordService) {
		s.cache = c
	}
}

// WithRecordClock overrides the audit timestamp source. Used by tests.
func WithRecordClock(now func() time.Time) RecordServiceOption {
	return func(s *recordService) {
		s.now = now
	}
}

// NewRecordService creates a new record service with the provided options
func NewRecordService(repos portsrepo.RepositoryProvider, options ...RecordServiceOption) portssvc.RecordSvcFacade {
	svc := &recordService{
		repos: repos,
		cache: cache.Passthrough{},
		now:   time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure recordService implements the RecordSvcFacade interface
var _ portssvc.RecordSvcFacade = (*recordService)(nil)

func (s *recordService) CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := validateAmount(sale.Amount); err != nil {
		return nil, err
	}
	if sale.StoreID == "" {
		return nil, apperrors.NewAppError(400, "sale requires a store", apperrors.ErrValidation)
	}
	if _, err := s.repos.StoreRepo.FindStoreByID(ctx, sale.StoreID); err != nil {
		return nil, err
	}

	if sale.SaleID == "" {
		sale.SaleID = uuid.NewString()
	}
	now := s.now()
	sale.CreatedAt = now
	sale.LastUpdatedAt = now

	if err := s.repos.SaleRepo.SaveSale(ctx, sale); err != nil {
		s.LogError(ctx, err, "Failed to save sale", slog.String("store_id", sale.StoreID))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	s.invalidateStoreReports(ctx, sale.StoreID)
	s.LogInfo(ctx, "Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("store_id", sale.StoreID),
		slog.Float64("amount", sale.Amount))
	return &sale, nil
}

func (s *recordService) UpdateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if err := validateAmount(sale.Amount); err != nil {
		return nil, err
	}
	existing, err := s.repos.SaleRepo.FindSaleByID(ctx, sale.SaleID)
	if err != nil {
		return nil, err
	}
	sale.StoreID = existing.StoreID // sales never move between stores
	sale.CreatedAt = existing.CreatedAt
	sale.CreatedBy = existing.CreatedBy
	sale.LastUpdatedAt = s.now()

	if err := s.repos.SaleRepo.UpdateSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	s.invalidateStoreReports(ctx, sale.StoreID)
	s.LogInfo(ctx, "Sale updated", slog.String("sale_id", sale.SaleID))
	return &sale, nil
}

func (s *recordService) DeleteSale(ctx context.Context, saleID string) error {
	existing, err := s.repos.SaleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return err
	}
	if err := s.repos.SaleRepo.DeleteSale(ctx, saleID); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	s.invalidateStoreReports(ctx, existing.StoreID)
	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID))
	return nil
}

func (s *recordService) ListSales(ctx context.Context, storeID string) ([]domain.Sale, error) {
	return s.repos.SaleRepo.FindSales(ctx, storeID)
}

func (s *recordService) CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	if err := validateAmount(payment.Amount); err != nil {
		return nil, err
	}
	if payment.StoreID == "" {
		return nil, apperrors.NewAppError(400, "payment requires a store", apperrors.ErrValidation)
	}
	if _, err := s.repos.StoreRepo.FindStoreByID(ctx, payment.StoreID); err != nil {
		return nil, err
	}

	if payment.PaymentID == "" {
		payment.PaymentID = uuid.NewString()
	}
	now := s.now()
	payment.CreatedAt = now
	payment.LastUpdatedAt = now

	if err := s.repos.PaymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("store_id", payment.StoreID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.invalidateStoreReports(ctx, payment.StoreID)
	s.LogInfo(ctx, "Payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("store_id", payment.StoreID),
		slog.Float64("amount", payment.Amount))
	return &payment, nil
}

func (s *recordService) UpdatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	if err := validateAmount(payment.Amount); err != nil {
		return nil, err
	}
	existing, err := s.repos.PaymentRepo.FindPaymentByID(ctx, payment.PaymentID)
	if err != nil {
		return nil, err
	}
	payment.StoreID = existing.StoreID
	payment.CreatedAt = existing.CreatedAt
	payment.CreatedBy = existing.CreatedBy
	payment.LastUpdatedAt = s.now()

	if err := s.repos.PaymentRepo.UpdatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	s.invalidateStoreReports(ctx, payment.StoreID)
	s.LogInfo(ctx, "Payment updated", slog.String("payment_id", payment.PaymentID))
	return &payment, nil
}

func (s *recordService) DeletePayment(ctx context.Context, paymentID string) error {
	existing, err := s.repos.PaymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if err := s.repos.PaymentRepo.DeletePayment(ctx, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.invalidateStoreReports(ctx, existing.StoreID)
	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

func (s *recordService) ListPayments(ctx context.Context, storeID string) ([]domain.Payment, error) {
	return s.repos.PaymentRepo.FindPayments(ctx, storeID)
}

func (s *recordService) CreateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	if err := validateAmount(expense.Amount); err != nil {
		return nil, err
	}
	if expense.ExpenseID == "" {
		expense.ExpenseID = uuid.NewString()
	}
	now := s.now()
	expense.CreatedAt = now
	expense.LastUpdatedAt = now

	if err := s.repos.ExpenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.invalidateProfitReports(ctx)
	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.Float64("amount", expense.Amount))
	return &expense, nil
}

func (s *recordService) UpdateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	if err := validateAmount(expense.Amount); err != nil {
		return nil, err
	}
	existing, err := s.repos.ExpenseRepo.FindExpenseByID(ctx, expense.ExpenseID)
	if err != nil {
		return nil, err
	}
	expense.CreatedAt = existing.CreatedAt
	expense.CreatedBy = existing.CreatedBy
	expense.LastUpdatedAt = s.now()

	if err := s.repos.ExpenseRepo.UpdateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.invalidateProfitReports(ctx)
	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

func (s *recordService) DeleteExpense(ctx context.Context, expenseID string) error {
	if _, err := s.repos.ExpenseRepo.FindExpenseByID(ctx, expenseID); err != nil {
		return err
	}
	if err := s.repos.ExpenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.invalidateProfitReports(ctx)
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *recordService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.repos.ExpenseRepo.FindExpenses(ctx)
}

// invalidateStoreReports drops every cached report a sale or payment for
// storeID can influence.
func (s *recordService) invalidateStoreReports(ctx context.Context, storeID string) {
	removed := s.cache.InvalidateTag(BalanceTag(storeID))
	removed += s.cache.InvalidateTag(TagDebtReports)
	removed += s.cache.InvalidateTag(TagProfitReports)
	removed += s.cache.InvalidateTag(TagPartnerReports)
	s.LogDebug(ctx, "Report caches invalidated",
		slog.String("store_id", storeID),
		slog.Int("entries", removed))
}

// invalidateProfitReports drops the reports that depend on expenses only.
func (s *recordService) invalidateProfitReports(ctx context.Context) {
	removed := s.cache.InvalidateTag(TagProfitReports)
	removed += s.cache.InvalidateTag(TagPartnerReports)
	s.LogDebug(ctx, "Profit report caches invalidated", slog.Int("entries", removed))
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	return nil
}
