package domain

import "time"

// PeriodToken is a named period selector coming from the UI layer.
type PeriodToken string

const (
	PeriodToday     PeriodToken = "today"
	PeriodThisWeek  PeriodToken = "this_week"
	PeriodThisMonth PeriodToken = "this_month"
	PeriodPrevMonth PeriodToken = "prev_month"
	PeriodFromStart PeriodToken = "from_start"
	PeriodCustom    PeriodToken = "custom"

	// Legacy selector values still emitted by older clients.
	PeriodDay         PeriodToken = "day"   // alias of today
	PeriodWeek        PeriodToken = "week"  // alias of this_week
	PeriodRollingLast PeriodToken = "month" // rolling last-30-days window
)

// PeriodSelection is what the UI layer sends: either a named token or an
// explicit custom range.
type PeriodSelection struct {
	Token PeriodToken `json:"token"`
	From  string      `json:"from,omitempty"`
	To    string      `json:"to,omitempty"`
}

// PeriodRange is a date window, inclusive on both ends, compared as calendar
// dates; time-of-day never participates.
type PeriodRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether d (truncated to its calendar date) falls inside
// the range.
func (p PeriodRange) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(p.From)) && !day.After(DateOnly(p.To))
}

func (p PeriodRange) String() string {
	return p.From.Format(time.DateOnly) + ".." + p.To.Format(time.DateOnly)
}

// DateOnly strips the time-of-day and location from t.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
