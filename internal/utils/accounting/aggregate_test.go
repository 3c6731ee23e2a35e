package accounting_test

import (
	"testing"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
)

func march2024() domain.PeriodRange {
	return domain.PeriodRange{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestFilterSalesByPeriodAndStore(t *testing.T) {
	sales := []domain.Sale{
		{SaleID: "in", StoreID: "s1", Date: "2024-03-10", Amount: 100},
		{SaleID: "before", StoreID: "s1", Date: "2024-02-28", Amount: 50},
		{SaleID: "after", StoreID: "s1", Date: "2024-04-01", Amount: 50},
		{SaleID: "other-store", StoreID: "s2", Date: "2024-03-10", Amount: 70},
		{SaleID: "day-first", StoreID: "s1", Date: "15/03/2024", Amount: 20},
	}

	got := accounting.FilterSales(sales, march2024(), "s1", accounting.FilterOptions{})
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.SaleID)
	}
	assert.Equal(t, []string{"in", "day-first"}, ids)
}

func TestFilterDegradesToIncludeOnBadDates(t *testing.T) {
	expenses := []domain.Expense{
		{ExpenseID: "good", Date: "2024-03-05", Amount: 10},
		{ExpenseID: "bad", Date: "???", Amount: 5},
	}

	lenient := accounting.FilterExpenses(expenses, march2024(), accounting.FilterOptions{})
	assert.Len(t, lenient, 2, "unparsable dates must not drop records")

	strict := accounting.FilterExpenses(expenses, march2024(), accounting.FilterOptions{Strict: true})
	assert.Len(t, strict, 1)
	assert.Equal(t, "good", strict[0].ExpenseID)
}

func TestFilterBoundsAreInclusive(t *testing.T) {
	payments := []domain.Payment{
		{PaymentID: "from", Date: "2024-03-01", Amount: 1},
		{PaymentID: "to", Date: "2024-03-31", Amount: 1},
	}
	got := accounting.FilterPayments(payments, march2024(), "", accounting.FilterOptions{})
	assert.Len(t, got, 2)
}

func TestSums(t *testing.T) {
	assert.Equal(t, 0.0, accounting.SumSales(nil))
	assert.InDelta(t, 150.5, accounting.SumPayments([]domain.Payment{
		{Amount: 100},
		{Amount: 50.5},
		{}, // absent amount counts as zero
	}), 1e-9)
}
