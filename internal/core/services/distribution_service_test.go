package services_test

import (
	"context"
	"testing"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 { return &v }

func partners(ps ...domain.Partner) []domain.Partner { return ps }

func TestDistributeEqualSplit(t *testing.T) {
	svc := services.NewDistributionService()

	rows := svc.Distribute(context.Background(), services.DistributionInput{
		NetProfit: 900,
		Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A"},
			domain.Partner{PartnerID: "p2", Name: "B"},
			domain.Partner{PartnerID: "p3", Name: "C"},
		),
		Distribution:         domain.DistributionEqual,
		WithdrawalsByPartner: map[string]float64{"p1": 100},
		CarryoverByPartner:   domain.CarryoverMap{"p1": -50},
	})

	require.Len(t, rows, 3)
	// p1: 300 - 100 - 50 = 150 owed to the partner.
	assert.InDelta(t, 300, rows[0].Base, domain.Epsilon)
	assert.InDelta(t, 150, rows[0].Net, domain.Epsilon)
	assert.Equal(t, domain.OwedToPartner, rows[0].Status)
	// p2 and p3 keep their full shares.
	assert.InDelta(t, 300, rows[1].Net, domain.Epsilon)
	assert.InDelta(t, 300, rows[2].Net, domain.Epsilon)
}

func TestDistributePercentNormalizesByActualSum(t *testing.T) {
	svc := services.NewDistributionService()

	in := services.DistributionInput{
		NetProfit: 1000,
		Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A", SharePercent: pct(60)},
			domain.Partner{PartnerID: "p2", Name: "B", SharePercent: pct(30)},
			domain.Partner{PartnerID: "p3", Name: "C", SharePercent: pct(5)},
		),
		Distribution: domain.DistributionPercent,
	}
	rows := svc.Distribute(context.Background(), in)

	require.Len(t, rows, 3)
	// Percents sum to 95; bases normalize by 95 so the total is conserved.
	assert.InDelta(t, 1000*60.0/95.0, rows[0].Base, domain.Epsilon)
	assert.InDelta(t, 1000*30.0/95.0, rows[1].Base, domain.Epsilon)
	assert.InDelta(t, 1000*5.0/95.0, rows[2].Base, domain.Epsilon)
	assert.InDelta(t, 1000, rows[0].Base+rows[1].Base+rows[2].Base, domain.Epsilon)

	warnings := svc.Validate(context.Background(), in, rows)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnPercentSum, warnings[0].Code)
	assert.InDelta(t, 95, warnings[0].Amount, domain.Epsilon)
}

func TestDistributePercentMissingShareGetsZeroBase(t *testing.T) {
	svc := services.NewDistributionService()

	rows := svc.Distribute(context.Background(), services.DistributionInput{
		NetProfit: 500,
		Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A", SharePercent: pct(100)},
			domain.Partner{PartnerID: "p2", Name: "B"},
		),
		Distribution: domain.DistributionPercent,
	})

	require.Len(t, rows, 2)
	assert.InDelta(t, 500, rows[0].Base, domain.Epsilon)
	assert.InDelta(t, 0, rows[1].Base, domain.Epsilon)
}

func TestDistributePercentModeWithoutAnyPercentFallsBackToEqual(t *testing.T) {
	svc := services.NewDistributionService()

	rows := svc.Distribute(context.Background(), services.DistributionInput{
		NetProfit: 600,
		Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A"},
			domain.Partner{PartnerID: "p2", Name: "B"},
		),
		Distribution: domain.DistributionPercent,
	})

	require.Len(t, rows, 2)
	assert.InDelta(t, 300, rows[0].Base, domain.Epsilon)
	assert.InDelta(t, 300, rows[1].Base, domain.Epsilon)
}

func TestDistributeSyntheticRoster(t *testing.T) {
	svc := services.NewDistributionService()

	rows := svc.Distribute(context.Background(), services.DistributionInput{
		NetProfit:    300,
		Count:        3,
		Distribution: domain.DistributionEqual,
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "p1", rows[0].PartnerID)
	assert.Equal(t, "Partner 1", rows[0].Name)
	for _, row := range rows {
		assert.InDelta(t, 100, row.Base, domain.Epsilon)
	}
}

func TestDistributeZeroPartnersMeansSoleOwner(t *testing.T) {
	svc := services.NewDistributionService()

	rows := svc.Distribute(context.Background(), services.DistributionInput{
		NetProfit:    450,
		Count:        0,
		Distribution: domain.DistributionEqual,
	})

	require.Len(t, rows, 1)
	assert.InDelta(t, 450, rows[0].Base, domain.Epsilon)
}

func TestDistributeLoss(t *testing.T) {
	svc := services.NewDistributionService()

	in := services.DistributionInput{
		NetProfit: -200,
		Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A"},
			domain.Partner{PartnerID: "p2", Name: "B"},
		),
		Distribution: domain.DistributionEqual,
	}
	rows := svc.Distribute(context.Background(), in)

	require.Len(t, rows, 2)
	assert.InDelta(t, 100, rows[0].Net, domain.Epsilon, "net is stored as an absolute value")
	assert.Equal(t, domain.OwedByPartner, rows[0].Status)

	warnings := svc.Validate(context.Background(), in, rows)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnLoss, warnings[0].Code)
}

func TestValidateOverWithdrawal(t *testing.T) {
	svc := services.NewDistributionService()

	in := services.DistributionInput{
		NetProfit: 200,
		Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A"},
			domain.Partner{PartnerID: "p2", Name: "B"},
		),
		Distribution:         domain.DistributionEqual,
		WithdrawalsByPartner: map[string]float64{"p1": 150},
	}
	rows := svc.Distribute(context.Background(), in)
	warnings := svc.Validate(context.Background(), in, rows)

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnOverWithdrawal, warnings[0].Code)
	assert.Equal(t, "p1", warnings[0].PartnerID)
	assert.InDelta(t, 50, warnings[0].Amount, domain.Epsilon)

	// p1's row: 100 - 150 = -50, owed by the partner.
	assert.InDelta(t, 50, rows[0].Net, domain.Epsilon)
	assert.Equal(t, domain.OwedByPartner, rows[0].Status)
}

func TestDistributeConservesTotal(t *testing.T) {
	svc := services.NewDistributionService()

	inputs := []services.DistributionInput{
		{NetProfit: 1234.56, Count: 3, Distribution: domain.DistributionEqual},
		{NetProfit: 1234.56, Distribution: domain.DistributionPercent, Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A", SharePercent: pct(70)},
			domain.Partner{PartnerID: "p2", Name: "B", SharePercent: pct(20)},
			domain.Partner{PartnerID: "p3", Name: "C", SharePercent: pct(10)},
		)},
	}
	for _, in := range inputs {
		rows := svc.Distribute(context.Background(), in)
		var total float64
		for _, row := range rows {
			total += row.Base
		}
		assert.InDelta(t, in.NetProfit, total, domain.Epsilon)
	}
}

func TestDistributeIsIdempotent(t *testing.T) {
	svc := services.NewDistributionService()

	in := services.DistributionInput{
		NetProfit: 900,
		Partners: partners(
			domain.Partner{PartnerID: "p1", Name: "A", SharePercent: pct(50)},
			domain.Partner{PartnerID: "p2", Name: "B", SharePercent: pct(50)},
		),
		Distribution:         domain.DistributionPercent,
		WithdrawalsByPartner: map[string]float64{"p2": 25},
	}
	first := svc.Distribute(context.Background(), in)
	second := svc.Distribute(context.Background(), in)
	assert.Equal(t, first, second)
}

func TestWithdrawalsInPeriod(t *testing.T) {
	adjustments := []domain.Adjustment{
		{AdjustmentID: "a1", PartnerID: "p1", Amount: 100, Date: "2024-03-05"},
		{AdjustmentID: "a2", PartnerID: "p1", Amount: 40, Date: "2024-03-20"},
		{AdjustmentID: "a3", PartnerID: "p2", Amount: 60, Date: "2024-02-01"}, // outside
		{AdjustmentID: "a4", PartnerID: "p2", Amount: 10, Date: "garbage"},   // unparsable, excluded
	}
	period := domain.PeriodRange{
		From: day(2024, 3, 1),
		To:   day(2024, 3, 31),
	}

	byPartner := services.WithdrawalsInPeriod(adjustments, period)
	assert.InDelta(t, 140, byPartner["p1"], domain.Epsilon)
	assert.NotContains(t, byPartner, "p2")
}

func TestMonthlyBreakdown(t *testing.T) {
	svc := services.NewDistributionService()
	cfg := domain.PartnersConfig{
		Count:        2,
		Distribution: domain.DistributionEqual,
		Adjustments: []domain.Adjustment{
			{AdjustmentID: "a1", PartnerID: "p1", Amount: 50, Date: "2024-01-10"},
		},
	}
	payments := []domain.Payment{
		payment("p1", "2024-01-05", 400),
		payment("p2", "2024-03-07", 600),
	}
	expenses := []domain.Expense{
		{ExpenseID: "e1", Date: "2024-01-20", Amount: 100},
	}
	period := domain.PeriodRange{From: day(2024, 1, 1), To: day(2024, 3, 31)}

	months := svc.MonthlyBreakdown(context.Background(), payments, expenses, cfg, period)

	require.Len(t, months, 3, "gap months appear with empty totals")
	jan, feb, mar := months[0], months[1], months[2]

	assert.Equal(t, "2024-01", jan.Month)
	assert.InDelta(t, 300, jan.NetProfit, domain.Epsilon)
	assert.InDelta(t, 50, jan.TotalWithdrawals, domain.Epsilon)
	require.Len(t, jan.Rows, 2)
	// Monthly rows never carry carryover.
	assert.InDelta(t, 0, jan.Rows[0].Carryover, domain.Epsilon)
	assert.InDelta(t, 100, jan.Rows[0].Net, domain.Epsilon) // 150 - 50

	assert.Equal(t, "2024-02", feb.Month)
	assert.InDelta(t, 0, feb.NetProfit, domain.Epsilon)

	assert.Equal(t, "2024-03", mar.Month)
	assert.InDelta(t, 600, mar.NetProfit, domain.Epsilon)
}

func TestMonthlyBreakdownSingleMonthOmitted(t *testing.T) {
	svc := services.NewDistributionService()
	period := domain.PeriodRange{From: day(2024, 3, 1), To: day(2024, 3, 31)}

	months := svc.MonthlyBreakdown(context.Background(),
		[]domain.Payment{payment("p1", "2024-03-05", 400)},
		nil, domain.PartnersConfig{Count: 2, Distribution: domain.DistributionEqual}, period)
	assert.Nil(t, months)
}

func TestMonthlyBreakdownCapsAtThreeYears(t *testing.T) {
	svc := services.NewDistributionService()
	period := domain.PeriodRange{From: day(2019, 1, 1), To: day(2024, 12, 31)}

	months := svc.MonthlyBreakdown(context.Background(),
		[]domain.Payment{
			payment("p1", "2019-02-10", 100),
			payment("p2", "2024-06-10", 100),
		},
		nil, domain.PartnersConfig{Count: 1, Distribution: domain.DistributionEqual}, period)

	assert.LessOrEqual(t, len(months), 36)
	assert.Equal(t, "2024-06", months[len(months)-1].Month, "activity at the tail survives the cap")
}
