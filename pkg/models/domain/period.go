package domain

import "time"

// PeriodKind identifies how a reporting period was expressed.
type PeriodKind string

const (
	PeriodToday         PeriodKind = "today"
	PeriodSingleDate    PeriodKind = "single-date"
	PeriodWeekToDate    PeriodKind = "week-to-date"
	PeriodMonthToDate   PeriodKind = "month-to-date"
	PeriodYearToDate    PeriodKind = "year-to-date"
	PeriodExplicitRange PeriodKind = "explicit-range"
)

// Period is a resolved, immutable reporting window. Start is inclusive and
// normalized to start-of-day UTC; End is inclusive (the current instant for
// to-date kinds). DayCount is the number of calendar days spanned and is
// never zero.
type Period struct {
	Start    time.Time
	End      time.Time
	DayCount int
	Kind     PeriodKind
	Label    string
}
