package dates_test

import (
	"testing"
	"time"

	"github.com/cardledger/card_ledger_app/internal/utils/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEnglishDigits(t *testing.T) {
	assert.Equal(t, "2024-01-05", dates.ToEnglishDigits("٢٠٢٤-٠١-٠٥"))
	assert.Equal(t, "1399", dates.ToEnglishDigits("۱۳۹۹"))
	assert.Equal(t, "plain", dates.ToEnglishDigits("plain"))
	assert.Equal(t, "", dates.ToEnglishDigits(""))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"iso", "2024-03-09", "2024-03-09", true},
		{"iso short", "2024-3-9", "2024-03-09", true},
		{"day first slash", "09/03/2024", "2024-03-09", true},
		{"day first short", "9/3/2024", "2024-03-09", true},
		{"day first dash", "09-03-2024", "2024-03-09", true},
		{"arabic digits", "٢٠٢٤-٠٣-٠٩", "2024-03-09", true},
		{"rfc3339", "2024-03-09T14:22:00Z", "2024-03-09", true},
		{"garbage", "not a date", "not a date", false},
		{"empty", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := dates.Normalize(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDropsTimeOfDay(t *testing.T) {
	got, ok := dates.Parse("2024-03-09T23:59:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-03", dates.MonthKey("09/03/2024"))
	assert.Equal(t, "", dates.MonthKey("junk"))
}
