// Package dates normalizes the mixed date formats found in imported
// bookkeeping data: ISO dates, day-first dates, and strings typed with
// Arabic-Indic or Extended Arabic-Indic digits.
package dates

import (
	"strings"
	"time"
)

// layouts accepted by Normalize, tried in order.
var layouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	time.RFC3339,
}

// ToEnglishDigits maps Arabic-Indic (٠-٩) and Extended Arabic-Indic (۰-۹)
// digits to ASCII. Other runes pass through unchanged.
func ToEnglishDigits(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x0660 && r <= 0x0669:
			b.WriteRune('0' + (r - 0x0660))
		case r >= 0x06F0 && r <= 0x06F9:
			b.WriteRune('0' + (r - 0x06F0))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse attempts to interpret s as a calendar date. The boolean result is
// false when no known layout matches; callers decide how to degrade.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(ToEnglishDigits(s))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Normalize returns s as YYYY-MM-DD. The boolean result is false when the
// input is unparsable, in which case the digit-translated input is returned
// so the raw value stays visible downstream.
func Normalize(s string) (string, bool) {
	t, ok := Parse(s)
	if !ok {
		return ToEnglishDigits(strings.TrimSpace(s)), false
	}
	return t.Format(time.DateOnly), true
}

// MonthKey returns the YYYY-MM bucket for s, or "" when unparsable.
func MonthKey(s string) string {
	t, ok := Parse(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01")
}
