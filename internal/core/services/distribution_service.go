package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/utils/accounting"
	"github.com/cardledger/card_ledger_app/internal/utils/dates"
)

// maxBreakdownMonths caps the per-month breakdown of very long periods.
const maxBreakdownMonths = 36

// DistributionInput is everything Distribute needs, fully resolved by the
// caller. The engine never consults ambient settings.
type DistributionInput struct {
	NetProfit            float64
	Partners             []domain.Partner
	Count                int // used when Partners is empty
	Distribution         domain.DistributionMode
	WithdrawalsByPartner map[string]float64
	CarryoverByPartner   domain.CarryoverMap
}

// DistributionService splits a period's net profit between partners and
// validates the inputs it was given. All arithmetic is float64; sum checks
// elsewhere use domain.Epsilon.
type DistributionService struct {
	BaseService
}

func NewDistributionService() *DistributionService {
	return &DistributionService{}
}

// Distribute computes each partner's settlement row.
//
// Equal mode divides net profit by the roster size (or Count when no roster
// is configured, guarded to at least 1. Zero partners means a sole owner,
// not a crash). Percent mode is only active when at least one partner
// carries a share percent; the normalizing denominator is the actual percent
// sum, not a literal 100, so misconfigured rosters still conserve the total.
// Partners without a percent in percent mode get a zero base. That is a
// data-quality problem Validate reports, never silently equalized.
func (s *DistributionService) Distribute(ctx context.Context, in DistributionInput) []domain.PartnerShareRow {
	roster := in.Partners
	if len(roster) == 0 {
		roster = syntheticRoster(in.Count)
	}

	percentMode := in.Distribution == domain.DistributionPercent && len(in.Partners) > 0 && anyPercent(in.Partners)

	var totalPercent float64
	if percentMode {
		totalPercent = sumPercent(in.Partners)
		if totalPercent == 0 {
			totalPercent = 100
		}
	}

	n := len(roster)
	if n < 1 {
		n = 1
	}
	perPartner := in.NetProfit / float64(n)

	rows := make([]domain.PartnerShareRow, 0, len(roster))
	for _, partner := range roster {
		var base float64
		if percentMode {
			base = in.NetProfit * (percentOf(partner) / totalPercent)
		} else {
			base = perPartner
		}

		withdrawals := in.WithdrawalsByPartner[partner.PartnerID]
		carryover := in.CarryoverByPartner[partner.PartnerID]
		net := base - withdrawals + carryover

		status := domain.OwedToPartner
		if net < 0 {
			status = domain.OwedByPartner
		}

		rows = append(rows, domain.PartnerShareRow{
			PartnerID:    partner.PartnerID,
			Name:         partner.Name,
			SharePercent: partner.SharePercent,
			Base:         base,
			Withdrawals:  withdrawals,
			Carryover:    carryover,
			Net:          math.Abs(net),
			Status:       status,
		})
	}

	s.LogDebug(ctx, "Distribution computed",
		slog.Int("partners", len(rows)),
		slog.Float64("net_profit", in.NetProfit),
		slog.Bool("percent_mode", percentMode))
	return rows
}

// Validate inspects a distribution's inputs and outputs and returns
// advisory warnings. Each check is independent; none is fatal and none
// changes the computed rows.
func (s *DistributionService) Validate(ctx context.Context, in DistributionInput, rows []domain.PartnerShareRow) []domain.Warning {
	var warnings []domain.Warning

	if in.Distribution == domain.DistributionPercent && len(in.Partners) > 0 && anyPercent(in.Partners) {
		total := sumPercent(in.Partners)
		if math.Abs(total-100) > domain.Epsilon {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnPercentSum,
				Message: fmt.Sprintf("partner share percentages sum to %g, not 100", total),
				Amount:  total,
			})
		}
	}

	for _, row := range rows {
		if row.Withdrawals > row.Base {
			excess := row.Withdrawals - row.Base
			warnings = append(warnings, domain.Warning{
				Code:      domain.WarnOverWithdrawal,
				Message:   fmt.Sprintf("%s withdrew %g more than their share", row.Name, excess),
				PartnerID: row.PartnerID,
				Amount:    excess,
			})
		}
	}

	if in.NetProfit < 0 {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnLoss,
			Message: fmt.Sprintf("distributing a loss of %g", math.Abs(in.NetProfit)),
			Amount:  in.NetProfit,
		})
	}

	if len(warnings) > 0 {
		s.LogDebug(ctx, "Distribution warnings", slog.Int("count", len(warnings)))
	}
	return warnings
}

// WithdrawalsInPeriod filters adjustments into the period and groups their
// amounts by partner.
func WithdrawalsInPeriod(adjustments []domain.Adjustment, period domain.PeriodRange) map[string]float64 {
	scoped := accounting.FilterAdjustments(adjustments, period, accounting.FilterOptions{Strict: true})
	byPartner := make(map[string]float64, len(scoped))
	for _, adj := range scoped {
		byPartner[adj.PartnerID] += adj.Amount
	}
	return byPartner
}

// MonthlyBreakdown slices a multi-month period into per-month
// distributions. Months with no activity still appear with empty totals.
// Carryover applies to the period as a whole, so each month distributes
// with a nil carryover map. The breakdown keeps at most the last
// maxBreakdownMonths months.
func (s *DistributionService) MonthlyBreakdown(ctx context.Context, payments []domain.Payment, expenses []domain.Expense, cfg domain.PartnersConfig, period domain.PeriodRange) []domain.MonthlyDistribution {
	type monthBucket struct {
		payments    []domain.Payment
		expenses    []domain.Expense
		adjustments []domain.Adjustment
	}
	buckets := make(map[string]*monthBucket)
	bucket := func(key string) *monthBucket {
		b, ok := buckets[key]
		if !ok {
			b = &monthBucket{}
			buckets[key] = b
		}
		return b
	}

	for _, p := range accounting.FilterPayments(payments, period, "", accounting.FilterOptions{Strict: true}) {
		if key := dates.MonthKey(p.Date); key != "" {
			bucket(key).payments = append(bucket(key).payments, p)
		}
	}
	for _, e := range accounting.FilterExpenses(expenses, period, accounting.FilterOptions{Strict: true}) {
		if key := dates.MonthKey(e.Date); key != "" {
			bucket(key).expenses = append(bucket(key).expenses, e)
		}
	}
	for _, a := range accounting.FilterAdjustments(cfg.Adjustments, period, accounting.FilterOptions{Strict: true}) {
		if key := dates.MonthKey(a.Date); key != "" {
			bucket(key).adjustments = append(bucket(key).adjustments, a)
		}
	}

	present := make(map[string]struct{}, len(buckets))
	for key := range buckets {
		present[key] = struct{}{}
	}
	keys := monthKeysInRange(period, present)
	if len(keys) <= 1 {
		return nil
	}

	months := make([]domain.MonthlyDistribution, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		if b == nil {
			b = &monthBucket{}
		}

		totalPayments := accounting.SumPayments(b.payments)
		totalExpenses := accounting.SumExpenses(b.expenses)
		net := totalPayments - totalExpenses

		withdrawals := make(map[string]float64)
		var totalWithdrawals float64
		for _, adj := range b.adjustments {
			withdrawals[adj.PartnerID] += adj.Amount
			totalWithdrawals += adj.Amount
		}

		rows := s.Distribute(ctx, DistributionInput{
			NetProfit:            net,
			Partners:             cfg.List,
			Count:                cfg.Count,
			Distribution:         cfg.Distribution,
			WithdrawalsByPartner: withdrawals,
		})

		months = append(months, domain.MonthlyDistribution{
			Month:            key,
			TotalPayments:    totalPayments,
			TotalExpenses:    totalExpenses,
			TotalWithdrawals: totalWithdrawals,
			NetProfit:        net,
			Rows:             rows,
		})
	}
	return months
}

// syntheticRoster builds the default "Partner 1..N" roster used when no
// explicit partner list is configured.
func syntheticRoster(count int) []domain.Partner {
	if count < 1 {
		count = 1
	}
	roster := make([]domain.Partner, count)
	for i := range roster {
		roster[i] = domain.Partner{
			PartnerID: fmt.Sprintf("p%d", i+1),
			Name:      fmt.Sprintf("Partner %d", i+1),
		}
	}
	return roster
}

func anyPercent(partners []domain.Partner) bool {
	for _, p := range partners {
		if p.SharePercent != nil {
			return true
		}
	}
	return false
}

func sumPercent(partners []domain.Partner) float64 {
	var total float64
	for _, p := range partners {
		total += percentOf(p)
	}
	return total
}

func percentOf(p domain.Partner) float64 {
	if p.SharePercent == nil {
		return 0
	}
	return *p.SharePercent
}

// monthKeysInRange returns the sorted union of the present keys and every
// month between the period bounds, trimmed to the trailing
// maxBreakdownMonths.
func monthKeysInRange(period domain.PeriodRange, present map[string]struct{}) []string {
	keys := make(map[string]struct{}, len(present))
	for key := range present {
		keys[key] = struct{}{}
	}

	start := time.Date(period.From.Year(), period.From.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(period.To.Year(), period.To.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m, i := start, 0; !m.After(end) && i < maxBreakdownMonths; m, i = m.AddDate(0, 1, 0), i+1 {
		keys[m.Format("2006-01")] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for key := range keys {
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)
	if len(sorted) > maxBreakdownMonths {
		sorted = sorted[len(sorted)-maxBreakdownMonths:]
	}
	return sorted
}
