package services_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(id, date string, amount float64) domain.Sale {
	return domain.Sale{SaleID: id, StoreID: "s1", Date: date, Amount: amount}
}

func payment(id, date string, amount float64) domain.Payment {
	return domain.Payment{PaymentID: id, StoreID: "s1", Date: date, Amount: amount}
}

func TestBuildRunningBalance(t *testing.T) {
	svc := services.NewStatementService()

	stmt := svc.Build(context.Background(),
		[]domain.Sale{sale("sl1", "2024-03-01", 100)},
		[]domain.Payment{payment("p1", "2024-03-02", 30)},
		0, services.StatementOptions{})

	require.Len(t, stmt.Lines, 2)
	assert.Equal(t, domain.LineSale, stmt.Lines[0].Kind)
	assert.Equal(t, 100.0, stmt.Lines[0].Balance)
	assert.Equal(t, domain.LinePayment, stmt.Lines[1].Kind)
	assert.Equal(t, 70.0, stmt.Lines[1].Balance)
	assert.Equal(t, 70.0, stmt.FinalBalance())
	assert.Equal(t, 100.0, stmt.Totals.TotalDebit)
	assert.Equal(t, 30.0, stmt.Totals.TotalCredit)
}

func TestBuildOpeningLine(t *testing.T) {
	svc := services.NewStatementService()

	stmt := svc.Build(context.Background(),
		[]domain.Sale{sale("sl1", "2024-03-01", 50)},
		nil, 200, services.StatementOptions{})

	require.Len(t, stmt.Lines, 2)
	assert.Equal(t, domain.LineOpening, stmt.Lines[0].Kind)
	assert.Equal(t, 200.0, stmt.Lines[0].Balance)
	assert.Equal(t, 250.0, stmt.FinalBalance())
	assert.Equal(t, 200.0, stmt.PreviousBalance)

	// No opening line when the carried balance is zero.
	stmt = svc.Build(context.Background(),
		[]domain.Sale{sale("sl1", "2024-03-01", 50)},
		nil, 0, services.StatementOptions{})
	require.Len(t, stmt.Lines, 1)
	assert.Equal(t, domain.LineSale, stmt.Lines[0].Kind)
}

func TestBuildIntraDayHeuristic(t *testing.T) {
	svc := services.NewStatementService()

	// Day one leaves a positive balance, so day two lists its payment
	// before its sale.
	stmt := svc.Build(context.Background(),
		[]domain.Sale{
			sale("sl1", "2024-03-01", 100),
			sale("sl2", "2024-03-02", 40),
		},
		[]domain.Payment{payment("p1", "2024-03-02", 60)},
		0, services.StatementOptions{})

	require.Len(t, stmt.Lines, 3)
	assert.Equal(t, domain.LinePayment, stmt.Lines[1].Kind)
	assert.Equal(t, domain.LineSale, stmt.Lines[2].Kind)
	assert.Equal(t, 80.0, stmt.FinalBalance())

	// With no entering debt, sales keep their natural first position.
	stmt = svc.Build(context.Background(),
		[]domain.Sale{sale("sl1", "2024-03-02", 40)},
		[]domain.Payment{payment("p1", "2024-03-02", 60)},
		0, services.StatementOptions{})

	require.Len(t, stmt.Lines, 2)
	assert.Equal(t, domain.LineSale, stmt.Lines[0].Kind)
	assert.Equal(t, domain.LinePayment, stmt.Lines[1].Kind)
}

func TestBuildStrictChronologicalKeepsInputOrder(t *testing.T) {
	svc := services.NewStatementService()

	stmt := svc.Build(context.Background(),
		[]domain.Sale{
			sale("sl1", "2024-03-01", 100),
			sale("sl2", "2024-03-02", 40),
		},
		[]domain.Payment{payment("p1", "2024-03-02", 60)},
		0, services.StatementOptions{StrictChronological: true})

	require.Len(t, stmt.Lines, 3)
	// Sales precede payments in the merged input, so strict mode keeps
	// the day-two sale before the day-two payment.
	assert.Equal(t, domain.LineSale, stmt.Lines[1].Kind)
	assert.Equal(t, domain.LinePayment, stmt.Lines[2].Kind)
	assert.Equal(t, 80.0, stmt.FinalBalance())
}

func TestBuildFinalBalanceIndependentOfInputOrder(t *testing.T) {
	svc := services.NewStatementService()

	sales := []domain.Sale{
		sale("sl1", "2024-03-01", 100),
		sale("sl2", "2024-03-03", 250),
		sale("sl3", "2024-03-03", 75),
		sale("sl4", "2024-03-10", 10),
	}
	payments := []domain.Payment{
		payment("p1", "2024-03-02", 30),
		payment("p2", "2024-03-03", 200),
		payment("p3", "2024-03-12", 90),
	}

	want := svc.Build(context.Background(), sales, payments, 50, services.StatementOptions{}).FinalBalance()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(sales), func(a, b int) { sales[a], sales[b] = sales[b], sales[a] })
		rng.Shuffle(len(payments), func(a, b int) { payments[a], payments[b] = payments[b], payments[a] })
		got := svc.Build(context.Background(), sales, payments, 50, services.StatementOptions{}).FinalBalance()
		assert.InDelta(t, want, got, domain.Epsilon)
	}
}

func TestBuildUnparsableDatesFlaggedButCounted(t *testing.T) {
	svc := services.NewStatementService()

	stmt := svc.Build(context.Background(),
		[]domain.Sale{
			sale("sl1", "2024-03-01", 100),
			sale("sl2", "garbage", 20),
		},
		nil, 0, services.StatementOptions{})

	require.Len(t, stmt.Lines, 2)
	last := stmt.Lines[1]
	assert.True(t, last.Flagged)
	assert.Equal(t, "sl2", last.RefID)
	assert.Equal(t, 120.0, stmt.FinalBalance(), "a bad date must not lose money")
}

func TestBuildEmptyInputs(t *testing.T) {
	svc := services.NewStatementService()

	stmt := svc.Build(context.Background(), nil, nil, 0, services.StatementOptions{})
	assert.Empty(t, stmt.Lines)
	assert.Equal(t, 0.0, stmt.FinalBalance())

	stmt = svc.Build(context.Background(), nil, nil, -40, services.StatementOptions{})
	require.Len(t, stmt.Lines, 1)
	assert.Equal(t, domain.LineOpening, stmt.Lines[0].Kind)
	assert.Equal(t, -40.0, stmt.FinalBalance())
}

func TestPreviousBalance(t *testing.T) {
	svc := services.NewStatementService()

	sales := []domain.Sale{
		sale("sl1", "2024-02-10", 100),
		sale("sl2", "2024-03-01", 500), // on the cutoff, excluded
		sale("sl3", "bad date", 999),   // unparsable, excluded
	}
	payments := []domain.Payment{
		payment("p1", "2024-02-20", 30),
		payment("p2", "2024-03-05", 70),
	}

	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 70.0, svc.PreviousBalance(sales, payments, cutoff))
}
