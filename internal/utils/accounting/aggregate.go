// Package accounting holds the pure filtering and summing primitives the
// reporting services are built from. Everything here operates on in-memory
// slices and never mutates its inputs.
package accounting

import (
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/utils/dates"
)

// FilterOptions tunes period filtering.
type FilterOptions struct {
	// Strict drops records whose date cannot be parsed. The default keeps
	// them: bookkeeping must never lose a record to a bad date, so the
	// lenient path includes unparsable records in every period.
	Strict bool
}

// FilterByPeriod returns the records whose normalized date falls inside
// period. dateOf extracts the raw date string from a record.
func FilterByPeriod[T any](records []T, dateOf func(T) string, period domain.PeriodRange, opts FilterOptions) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		d, ok := dates.Parse(dateOf(rec))
		if !ok {
			if !opts.Strict {
				out = append(out, rec)
			}
			continue
		}
		if period.Contains(d) {
			out = append(out, rec)
		}
	}
	return out
}

// Sum reduces records with amountOf. Records where amountOf yields NaN-free
// zero values simply contribute nothing.
func Sum[T any](records []T, amountOf func(T) float64) float64 {
	var total float64
	for _, rec := range records {
		total += amountOf(rec)
	}
	return total
}

// Convenience wrappers for the three record kinds. ByStore filters apply
// before the period check; an empty storeID matches everything.

func FilterSales(sales []domain.Sale, period domain.PeriodRange, storeID string, opts FilterOptions) []domain.Sale {
	scoped := sales
	if storeID != "" {
		scoped = make([]domain.Sale, 0, len(sales))
		for _, s := range sales {
			if s.StoreID == storeID {
				scoped = append(scoped, s)
			}
		}
	}
	return FilterByPeriod(scoped, func(s domain.Sale) string { return s.Date }, period, opts)
}

func FilterPayments(payments []domain.Payment, period domain.PeriodRange, storeID string, opts FilterOptions) []domain.Payment {
	scoped := payments
	if storeID != "" {
		scoped = make([]domain.Payment, 0, len(payments))
		for _, p := range payments {
			if p.StoreID == storeID {
				scoped = append(scoped, p)
			}
		}
	}
	return FilterByPeriod(scoped, func(p domain.Payment) string { return p.Date }, period, opts)
}

func FilterExpenses(expenses []domain.Expense, period domain.PeriodRange, opts FilterOptions) []domain.Expense {
	return FilterByPeriod(expenses, func(e domain.Expense) string { return e.Date }, period, opts)
}

func FilterAdjustments(adjustments []domain.Adjustment, period domain.PeriodRange, opts FilterOptions) []domain.Adjustment {
	return FilterByPeriod(adjustments, func(a domain.Adjustment) string { return a.Date }, period, opts)
}

func SumSales(sales []domain.Sale) float64 {
	return Sum(sales, func(s domain.Sale) float64 { return s.Amount })
}

func SumPayments(payments []domain.Payment) float64 {
	return Sum(payments, func(p domain.Payment) float64 { return p.Amount })
}

func SumExpenses(expenses []domain.Expense) float64 {
	return Sum(expenses, func(e domain.Expense) float64 { return e.Amount })
}
