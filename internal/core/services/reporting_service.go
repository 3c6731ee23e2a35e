package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/utils/accounting"
	"github.com/cardledger/card_ledger_app/pkg/cache"
)

// Cache key prefixes and tags. Mutating services invalidate by tag, so the
// tag names here are part of the contract with the record services.
const (
	profitKeyPrefix    = "report_profit"
	partnersKeyPrefix  = "report_partners"
	statementKeyPrefix = "report_statement"
	debtKey            = "report_debt_all"
	balanceKeyPrefix   = "balance"

	TagProfitReports  = "report_profit"
	TagPartnerReports = "report_partners"
	TagDebtReports    = "report_debt"
)

// BalanceTag is the cache tag carried by every entry derived from one
// store's sales and payments.
func BalanceTag(storeID string) string {
	return balanceKeyPrefix + ":" + storeID
}

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	repos portsrepo.RepositoryProvider

	statements  *StatementService
	distributor *DistributionService

	cache     cache.Cache
	reportTTL time.Duration
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportCache sets the cache the reports are memoized in.
func WithReportCache(c cache.Cache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = c
	}
}

// WithReportTTL overrides the report entry lifetime.
func WithReportTTL(ttl time.Duration) ReportingServiceOption {
	return func(s *reportingService) {
		s.reportTTL = ttl
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos portsrepo.RepositoryProvider, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		repos:       repos,
		statements:  NewStatementService(),
		distributor: NewDistributionService(),
		cache:       cache.Passthrough{},
		reportTTL:   cache.DefaultReportTTL,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ProfitSummary aggregates sales, payments and expenses over the period.
// Records with unparsable dates are included rather than dropped, so a
// mistyped date can never make money disappear from the headline numbers.
func (s *reportingService) ProfitSummary(ctx context.Context, period domain.PeriodRange) (*domain.ProfitSummary, error) {
	key := fmt.Sprintf("%s_%s_%s", profitKeyPrefix, period.From.Format(time.DateOnly), period.To.Format(time.DateOnly))

	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		return s.computeProfitSummary(ctx, period)
	}, s.reportTTL, TagProfitReports)
	if err != nil {
		return nil, err
	}
	return v.(*domain.ProfitSummary), nil
}

func (s *reportingService) computeProfitSummary(ctx context.Context, period domain.PeriodRange) (*domain.ProfitSummary, error) {
	sales, err := s.repos.SaleRepo.FindSales(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to load sales for profit summary")
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	payments, err := s.repos.PaymentRepo.FindPayments(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for profit summary")
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	expenses, err := s.repos.ExpenseRepo.FindExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expenses for profit summary")
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	lenient := accounting.FilterOptions{}
	summary := &domain.ProfitSummary{
		TotalSales:    accounting.SumSales(accounting.FilterSales(sales, period, "", lenient)),
		TotalPayments: accounting.SumPayments(accounting.FilterPayments(payments, period, "", lenient)),
		TotalExpenses: accounting.SumExpenses(accounting.FilterExpenses(expenses, period, lenient)),
	}
	summary.NetProfit = summary.TotalPayments - summary.TotalExpenses

	s.LogInfo(ctx, "Profit summary computed",
		slog.String("period", period.String()),
		slog.Float64("net_profit", summary.NetProfit))
	return summary, nil
}

// PartnerReport distributes the period's net profit across the partner
// roster.
func (s *reportingService) PartnerReport(ctx context.Context, period domain.PeriodRange) (*domain.PartnerReport, error) {
	key := fmt.Sprintf("%s_%s_%s", partnersKeyPrefix, period.From.Format(time.DateOnly), period.To.Format(time.DateOnly))

	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		return s.computePartnerReport(ctx, period)
	}, s.reportTTL, TagPartnerReports)
	if err != nil {
		return nil, err
	}
	return v.(*domain.PartnerReport), nil
}

func (s *reportingService) computePartnerReport(ctx context.Context, period domain.PeriodRange) (*domain.PartnerReport, error) {
	summary, err := s.computeProfitSummary(ctx, period)
	if err != nil {
		return nil, err
	}

	cfg, err := s.repos.PartnerRepo.GetPartnersConfig(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load partner configuration")
		return nil, fmt.Errorf("failed to load partner configuration: %w", err)
	}

	in := DistributionInput{
		NetProfit:            summary.NetProfit,
		Partners:             cfg.List,
		Count:                cfg.Count,
		Distribution:         cfg.Distribution,
		WithdrawalsByPartner: WithdrawalsInPeriod(cfg.Adjustments, period),
		CarryoverByPartner:   cfg.Carryover,
	}
	rows := s.distributor.Distribute(ctx, in)
	warnings := s.distributor.Validate(ctx, in, rows)

	payments, err := s.repos.PaymentRepo.FindPayments(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	expenses, err := s.repos.ExpenseRepo.FindExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	report := &domain.PartnerReport{
		Period:      period,
		Summary:     *summary,
		Rows:        rows,
		Warnings:    warnings,
		Adjustments: accounting.FilterAdjustments(cfg.Adjustments, period, accounting.FilterOptions{Strict: true}),
		Months:      s.distributor.MonthlyBreakdown(ctx, payments, expenses, *cfg, period),
	}

	s.LogInfo(ctx, "Partner report generated",
		slog.String("period", period.String()),
		slog.Int("partners", len(rows)),
		slog.Int("warnings", len(warnings)))
	return report, nil
}

// AccountStatement reconstructs one store's running-balance statement over
// the period. Activity before the period folds into the opening balance.
func (s *reportingService) AccountStatement(ctx context.Context, storeID string, period domain.PeriodRange) (*domain.LedgerStatement, error) {
	key := fmt.Sprintf("%s_%s_%s_%s", statementKeyPrefix, storeID, period.From.Format(time.DateOnly), period.To.Format(time.DateOnly))

	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		return s.computeStatement(ctx, storeID, period)
	}, s.reportTTL, BalanceTag(storeID))
	if err != nil {
		return nil, err
	}
	return v.(*domain.LedgerStatement), nil
}

func (s *reportingService) computeStatement(ctx context.Context, storeID string, period domain.PeriodRange) (*domain.LedgerStatement, error) {
	if _, err := s.repos.StoreRepo.FindStoreByID(ctx, storeID); err != nil {
		return nil, err
	}

	sales, err := s.repos.SaleRepo.FindSales(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	payments, err := s.repos.PaymentRepo.FindPayments(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	previous := s.statements.PreviousBalance(sales, payments, period.From)

	lenient := accounting.FilterOptions{}
	stmt := s.statements.Build(ctx,
		accounting.FilterSales(sales, period, "", lenient),
		accounting.FilterPayments(payments, period, storeID, lenient),
		previous, StatementOptions{})

	s.LogInfo(ctx, "Account statement generated",
		slog.String("store_id", storeID),
		slog.String("period", period.String()),
		slog.Int("lines", len(stmt.Lines)),
		slog.Float64("final_balance", stmt.FinalBalance()))
	return &stmt, nil
}

// DebtReport lists every store's lifetime balance, largest debt first.
func (s *reportingService) DebtReport(ctx context.Context) ([]domain.StoreBalance, error) {
	v, err := s.cache.GetOrCompute(ctx, debtKey, func(ctx context.Context) (any, error) {
		return s.computeDebtReport(ctx)
	}, s.reportTTL, TagDebtReports)
	if err != nil {
		return nil, err
	}
	return v.([]domain.StoreBalance), nil
}

func (s *reportingService) computeDebtReport(ctx context.Context) ([]domain.StoreBalance, error) {
	stores, err := s.repos.StoreRepo.FindStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}
	sales, err := s.repos.SaleRepo.FindSales(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	payments, err := s.repos.PaymentRepo.FindPayments(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	salesByStore := make(map[string]float64)
	for _, sale := range sales {
		salesByStore[sale.StoreID] += sale.Amount
	}
	paymentsByStore := make(map[string]float64)
	for _, payment := range payments {
		paymentsByStore[payment.StoreID] += payment.Amount
	}

	balances := make([]domain.StoreBalance, 0, len(stores))
	for _, store := range stores {
		balances = append(balances, domain.StoreBalance{
			StoreID:       store.StoreID,
			StoreName:     store.Name,
			TotalSales:    salesByStore[store.StoreID],
			TotalPayments: paymentsByStore[store.StoreID],
			Balance:       salesByStore[store.StoreID] - paymentsByStore[store.StoreID],
		})
	}
	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Balance > balances[j].Balance
	})

	s.LogInfo(ctx, "Debt report generated", slog.Int("stores", len(balances)))
	return balances, nil
}

// StoreBalance returns one store's lifetime balance.
func (s *reportingService) StoreBalance(ctx context.Context, storeID string) (*domain.StoreBalance, error) {
	key := fmt.Sprintf("%s_%s", balanceKeyPrefix, storeID)

	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		return s.computeStoreBalance(ctx, storeID)
	}, s.reportTTL, BalanceTag(storeID))
	if err != nil {
		return nil, err
	}
	return v.(*domain.StoreBalance), nil
}

func (s *reportingService) computeStoreBalance(ctx context.Context, storeID string) (*domain.StoreBalance, error) {
	store, err := s.repos.StoreRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	sales, err := s.repos.SaleRepo.FindSales(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	payments, err := s.repos.PaymentRepo.FindPayments(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	totalSales := accounting.SumSales(sales)
	totalPayments := accounting.SumPayments(payments)
	return &domain.StoreBalance{
		StoreID:       store.StoreID,
		StoreName:     store.Name,
		TotalSales:    totalSales,
		TotalPayments: totalPayments,
		Balance:       totalSales - totalPayments,
	}, nil
}
