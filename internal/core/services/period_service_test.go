package services_test

import (
	"testing"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	// A Wednesday in mid-March.
	return time.Date(2024, 3, 13, 15, 4, 5, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newResolver(opts ...services.PeriodResolverOption) *services.PeriodResolver {
	opts = append([]services.PeriodResolverOption{services.WithClock(fixedNow)}, opts...)
	return services.NewPeriodResolver(opts...)
}

func TestResolveNamedTokens(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name  string
		token domain.PeriodToken
		from  time.Time
		to    time.Time
	}{
		{"today", domain.PeriodToday, day(2024, 3, 13), day(2024, 3, 13)},
		{"legacy day alias", domain.PeriodDay, day(2024, 3, 13), day(2024, 3, 13)},
		{"this week starts on sunday", domain.PeriodThisWeek, day(2024, 3, 10), day(2024, 3, 13)},
		{"legacy week alias", domain.PeriodWeek, day(2024, 3, 10), day(2024, 3, 13)},
		{"this month", domain.PeriodThisMonth, day(2024, 3, 1), day(2024, 3, 13)},
		{"previous month", domain.PeriodPrevMonth, day(2024, 2, 1), day(2024, 2, 29)},
		{"rolling last month window", domain.PeriodRollingLast, day(2024, 2, 14), day(2024, 3, 13)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := r.Resolve(domain.PeriodSelection{Token: tc.token})
			assert.Equal(t, tc.from, rng.From)
			assert.Equal(t, tc.to, rng.To)
		})
	}
}

func TestResolveFromStartUsesEarliestRecord(t *testing.T) {
	r := newResolver(services.WithEarliestDate(func() (time.Time, bool) {
		return time.Date(2022, 7, 9, 18, 0, 0, 0, time.UTC), true
	}))

	rng := r.Resolve(domain.PeriodSelection{Token: domain.PeriodFromStart})
	assert.Equal(t, day(2022, 7, 9), rng.From)
	assert.Equal(t, day(2024, 3, 13), rng.To)
}

func TestResolveFromStartFallsBackToStartOfYear(t *testing.T) {
	r := newResolver(services.WithEarliestDate(func() (time.Time, bool) {
		return time.Time{}, false
	}))

	rng := r.Resolve(domain.PeriodSelection{Token: domain.PeriodFromStart})
	assert.Equal(t, day(2024, 1, 1), rng.From)
	assert.Equal(t, day(2024, 3, 13), rng.To)
}

func TestResolveUnknownTokenDegradesToFromStart(t *testing.T) {
	r := newResolver()

	rng := r.Resolve(domain.PeriodSelection{Token: "quarter"})
	assert.Equal(t, day(2024, 1, 1), rng.From)
	assert.Equal(t, day(2024, 3, 13), rng.To)
}

func TestResolveCustom(t *testing.T) {
	r := newResolver()
	today := day(2024, 3, 13)

	tests := []struct {
		name string
		from string
		to   string
		want domain.PeriodRange
	}{
		{"valid range", "2024-01-05", "2024-02-10", domain.PeriodRange{From: day(2024, 1, 5), To: day(2024, 2, 10)}},
		{"day-first format", "05/01/2024", "2024-02-10", domain.PeriodRange{From: day(2024, 1, 5), To: day(2024, 2, 10)}},
		{"arabic digits", "٢٠٢٤-٠١-٠٥", "2024-02-10", domain.PeriodRange{From: day(2024, 1, 5), To: day(2024, 2, 10)}},
		{"reversed collapses to today", "2024-02-10", "2024-01-05", domain.PeriodRange{From: today, To: today}},
		{"unparsable collapses to today", "not a date", "2024-02-10", domain.PeriodRange{From: today, To: today}},
		{"out-of-range year rejected", "1234-01-01", "2024-02-10", domain.PeriodRange{From: today, To: today}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := r.Resolve(domain.PeriodSelection{Token: domain.PeriodCustom, From: tc.from, To: tc.to})
			assert.Equal(t, tc.want, rng)
		})
	}
}

func TestSetPeriodStoresAndNotifies(t *testing.T) {
	r := newResolver()

	var notified []domain.PeriodRange
	r.Subscribe(func(rng domain.PeriodRange) { notified = append(notified, rng) })

	rng := r.SetPeriod(domain.PeriodSelection{Token: domain.PeriodToday})
	assert.Equal(t, rng, r.Current())
	assert.Equal(t, []domain.PeriodRange{rng}, notified)

	rng2 := r.SetPeriod(domain.PeriodSelection{Token: domain.PeriodThisMonth})
	assert.Equal(t, rng2, r.Current())
	assert.Len(t, notified, 2)
}

func TestPeriodRangeContains(t *testing.T) {
	rng := domain.PeriodRange{From: day(2024, 3, 1), To: day(2024, 3, 13)}

	assert.True(t, rng.Contains(day(2024, 3, 1)))
	assert.True(t, rng.Contains(time.Date(2024, 3, 13, 23, 59, 0, 0, time.UTC)))
	assert.False(t, rng.Contains(day(2024, 2, 29)))
	assert.False(t, rng.Contains(day(2024, 3, 14)))
}
