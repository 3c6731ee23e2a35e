package services

import (
	"sync"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/utils/dates"
)

// EarliestDateFunc reports the earliest record date across the relevant
// collections, when any records exist. The resolver never scans storage
// itself; the provider is injected.
type EarliestDateFunc func() (time.Time, bool)

// PeriodResolver turns period selections into canonical date ranges and is
// the single source of truth for the currently selected period. Components
// that need to react to period changes subscribe to it.
type PeriodResolver struct {
	mu       sync.Mutex
	now      func() time.Time
	earliest EarliestDateFunc
	current  domain.PeriodRange
	subs     []func(domain.PeriodRange)
}

// PeriodResolverOption configures a PeriodResolver.
type PeriodResolverOption func(*PeriodResolver)

// WithClock overrides the resolver's time source. Used by tests.
func WithClock(now func() time.Time) PeriodResolverOption {
	return func(r *PeriodResolver) { r.now = now }
}

// WithEarliestDate supplies the scan used by from_start.
func WithEarliestDate(fn EarliestDateFunc) PeriodResolverOption {
	return func(r *PeriodResolver) { r.earliest = fn }
}

// NewPeriodResolver creates a resolver. Without an earliest-date provider,
// from_start falls back to the start of the current year.
func NewPeriodResolver(opts ...PeriodResolverOption) *PeriodResolver {
	r := &PeriodResolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.current = r.Resolve(domain.PeriodSelection{Token: domain.PeriodFromStart})
	return r
}

// Resolve maps a selection to a canonical range. It never fails: invalid
// custom ranges collapse to today..today, unknown tokens degrade to
// from_start semantics.
func (r *PeriodResolver) Resolve(sel domain.PeriodSelection) domain.PeriodRange {
	today := domain.DateOnly(r.now())

	switch sel.Token {
	case domain.PeriodToday, domain.PeriodDay:
		return domain.PeriodRange{From: today, To: today}

	case domain.PeriodThisWeek, domain.PeriodWeek:
		return domain.PeriodRange{From: startOfWeek(today), To: today}

	case domain.PeriodThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.PeriodRange{From: first, To: today}

	case domain.PeriodPrevMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		lastOfPrev := firstOfThis.AddDate(0, 0, -1)
		firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.PeriodRange{From: firstOfPrev, To: lastOfPrev}

	case domain.PeriodRollingLast:
		// Rolling window: one month back plus a day, matching the legacy
		// "last month" selector.
		return domain.PeriodRange{From: today.AddDate(0, -1, 1), To: today}

	case domain.PeriodCustom:
		from, okFrom := clampDate(sel.From)
		to, okTo := clampDate(sel.To)
		if !okFrom || !okTo || from.After(to) {
			return domain.PeriodRange{From: today, To: today}
		}
		return domain.PeriodRange{From: from, To: to}

	default:
		// from_start, plus anything unrecognized.
		return r.fromStart(today)
	}
}

// SetPeriod resolves the selection, stores it as the current period, and
// notifies every subscriber.
func (r *PeriodResolver) SetPeriod(sel domain.PeriodSelection) domain.PeriodRange {
	rng := r.Resolve(sel)

	r.mu.Lock()
	r.current = rng
	subs := make([]func(domain.PeriodRange), len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(rng)
	}
	return rng
}

// Current returns the last range stored by SetPeriod.
func (r *PeriodResolver) Current() domain.PeriodRange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers a callback invoked on every SetPeriod.
func (r *PeriodResolver) Subscribe(fn func(domain.PeriodRange)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

func (r *PeriodResolver) fromStart(today time.Time) domain.PeriodRange {
	if r.earliest != nil {
		if earliest, ok := r.earliest(); ok {
			return domain.PeriodRange{From: domain.DateOnly(earliest), To: today}
		}
	}
	startOfYear := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.PeriodRange{From: startOfYear, To: today}
}

// startOfWeek returns the Sunday on or before d, the week convention the
// ledger's operators use.
func startOfWeek(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// clampDate parses a custom boundary and rejects wildly out-of-range years,
// which in practice are data-entry typos.
func clampDate(s string) (time.Time, bool) {
	t, ok := dates.Parse(s)
	if !ok {
		return time.Time{}, false
	}
	if t.Year() < 1900 || t.Year() > 2100 {
		return time.Time{}, false
	}
	return t, true
}
