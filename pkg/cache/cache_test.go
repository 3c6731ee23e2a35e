package cache_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cardledger/card_ledger_app/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(opts ...cache.Option) (*cache.MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts = append(opts, cache.WithClock(clock.Now))
	return cache.NewMemoryCache(opts...), clock
}

func TestGetOrComputeMemoizesWithinTTL(t *testing.T) {
	c, clock := newTestCache()
	calls := 0
	compute := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v1, err := c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.NoError(t, err)
	clock.Advance(10 * time.Millisecond)
	v2, err := c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second call within TTL must not recompute")
	assert.Equal(t, v1, v2)
}

func TestGetOrComputeRecomputesAfterExpiry(t *testing.T) {
	c, clock := newTestCache()
	calls := 0
	compute := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.NoError(t, err)

	clock.Advance(time.Minute) // exactly at expiry counts as expired
	v, err := c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, v)
}

func TestComputeErrorIsNotCached(t *testing.T) {
	c, _ := newTestCache()
	calls := 0
	compute := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, assert.AnError
		}
		return "ok", nil
	}

	_, err := c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.Error(t, err)
	v, err := c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestInvalidateBySubstringAndRegexp(t *testing.T) {
	c, _ := newTestCache()
	c.Set("report_profit_2024-01_2024-01", 1, time.Minute)
	c.Set("report_profit_2024-02_2024-02", 2, time.Minute)
	c.Set("report_debt_all", 3, time.Minute)

	removed := c.Invalidate("report_profit")
	assert.Equal(t, 2, removed)
	_, ok := c.Get("report_profit_2024-01_2024-01")
	assert.False(t, ok)
	_, ok = c.Get("report_debt_all")
	assert.True(t, ok)

	removed = c.InvalidateRegexp(regexp.MustCompile(`^report_debt`))
	assert.Equal(t, 1, removed)
}

func TestInvalidatedKeyRecomputes(t *testing.T) {
	c, _ := newTestCache()
	calls := 0
	compute := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.GetOrCompute(context.Background(), "report_profit_2024-01_2024-01", compute, time.Minute)
	require.NoError(t, err)
	c.InvalidateRegexp(regexp.MustCompile(`^report_profit`))
	_, err = c.GetOrCompute(context.Background(), "report_profit_2024-01_2024-01", compute, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "invalidation must force recomputation")
}

func TestInvalidateTag(t *testing.T) {
	c, _ := newTestCache()
	c.Set("report_profit_a", 1, time.Minute, "report_profit")
	c.Set("report_profit_b", 2, time.Minute, "report_profit")
	c.Set("balance_s1", 3, time.Minute, "balance:s1")

	assert.Equal(t, 2, c.InvalidateTag("report_profit"))
	assert.Equal(t, 0, c.InvalidateTag("report_profit"), "tag index cleaned after removal")
	_, ok := c.Get("balance_s1")
	assert.True(t, ok)
	assert.Equal(t, 1, c.InvalidateTag("balance:s1"))
}

func TestMaxSizeEvictsOldest(t *testing.T) {
	c, clock := newTestCache(cache.WithMaxSize(2))
	c.Set("first", 1, time.Hour)
	clock.Advance(time.Second)
	c.Set("second", 2, time.Hour)
	clock.Advance(time.Second)
	c.Set("third", 3, time.Hour)

	_, ok := c.Get("first")
	assert.False(t, ok, "oldest entry evicted at capacity")
	_, ok = c.Get("second")
	assert.True(t, ok)
	_, ok = c.Get("third")
	assert.True(t, ok)
}

func TestStats(t *testing.T) {
	c, _ := newTestCache()
	c.Set("k", 1, time.Minute)
	c.Get("k")
	c.Get("absent")

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestPassthroughAlwaysComputes(t *testing.T) {
	var c cache.Cache = cache.Passthrough{}
	calls := 0
	compute := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}
	_, err := c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.NoError(t, err)
	_, err = c.GetOrCompute(context.Background(), "k", compute, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
