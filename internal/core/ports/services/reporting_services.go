package services

import (
	"context"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines the read side: every report the application
// serves. Implementations cache aggressively; results are safe to memoize
// because the record services invalidate on every mutation.
type ReportingSvcFacade interface {
	// ProfitSummary aggregates sales, payments and expenses over the period.
	ProfitSummary(ctx context.Context, period domain.PeriodRange) (*domain.ProfitSummary, error)

	// PartnerReport distributes the period's net profit across the partner
	// roster, including warnings and the per-month breakdown for
	// multi-month periods.
	PartnerReport(ctx context.Context, period domain.PeriodRange) (*domain.PartnerReport, error)

	// AccountStatement reconstructs a store's running-balance statement for
	// the period, with the pre-period balance as the opening line.
	AccountStatement(ctx context.Context, storeID string, period domain.PeriodRange) (*domain.LedgerStatement, error)

	// DebtReport lists every store's lifetime balance, largest debt first.
	DebtReport(ctx context.Context) ([]domain.StoreBalance, error)

	// StoreBalance returns one store's lifetime balance.
	StoreBalance(ctx context.Context, storeID string) (*domain.StoreBalance, error)
}

// PeriodSvcFacade resolves period selections and tracks the active period.
type PeriodSvcFacade interface {
	Resolve(sel domain.PeriodSelection) domain.PeriodRange
	SetPeriod(sel domain.PeriodSelection) domain.PeriodRange
	Current() domain.PeriodRange
}
