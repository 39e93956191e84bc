package period

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
)

const dayLength = 24 * time.Hour

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

var toDateUnits = map[string]domain.PeriodKind{
	"today":         domain.PeriodToday,
	"week to date":  domain.PeriodWeekToDate,
	"month to date": domain.PeriodMonthToDate,
	"year to date":  domain.PeriodYearToDate,
}

// Resolver normalizes period expressions into canonical domain.Period
// values. All arithmetic is done in UTC so results do not drift with the
// host timezone.
type Resolver struct {
	now func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// Resolve handles the string-shaped expressions: empty input (today), a
// single calendar date, or one of the to-date tokens.
func (r *Resolver) Resolve(expr string) (domain.Period, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		now := r.now().UTC()
		return domain.Period{
			Start:    startOfDay(now),
			End:      now,
			DayCount: 1,
			Kind:     domain.PeriodToday,
			Label:    "Today",
		}, nil
	}

	if date, ok := parseDate(expr); ok {
		return r.ResolveDate(date), nil
	}

	if kind, ok := toDateUnits[strings.ToLower(expr)]; ok {
		return r.resolveToDate(kind), nil
	}

	return domain.Period{}, pms.InvalidPeriodError(fmt.Sprintf("unrecognized period expression %q", expr))
}

// ResolveDate builds a single-date period for the given calendar date.
func (r *Resolver) ResolveDate(date time.Time) domain.Period {
	day := startOfDay(date.UTC())
	return domain.Period{
		Start:    day,
		End:      day,
		DayCount: 1,
		Kind:     domain.PeriodSingleDate,
		Label:    fmt.Sprintf("%s, %s", day.Format("Mon"), formatOrdinalDate(day)),
	}
}

// ResolveRange builds an explicit inclusive date range. Both bounds are
// normalized to start-of-day UTC.
func (r *Resolver) ResolveRange(startDate, endDate string) (domain.Period, error) {
	start, okStart := parseDate(startDate)
	end, okEnd := parseDate(endDate)
	if !okStart || !okEnd {
		return domain.Period{}, pms.InvalidPeriodError(
			fmt.Sprintf("unparseable date range %q - %q", startDate, endDate))
	}

	startDay := startOfDay(start.UTC())
	endDay := startOfDay(end.UTC())
	return domain.Period{
		Start:    startDay,
		End:      endDay,
		DayCount: dayCount(startDay, endDay),
		Kind:     domain.PeriodExplicitRange,
		Label:    fmt.Sprintf("%s - %s", formatOrdinalDate(startDay), formatOrdinalDate(endDay)),
	}, nil
}

func (r *Resolver) resolveToDate(kind domain.PeriodKind) domain.Period {
	now := r.now().UTC()

	var start time.Time
	switch kind {
	case domain.PeriodToday:
		start = startOfDay(now)
	case domain.PeriodWeekToDate:
		start = startOfDay(now.AddDate(0, 0, -int(now.Weekday())))
	case domain.PeriodMonthToDate:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case domain.PeriodYearToDate:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	return domain.Period{
		Start:    start,
		End:      now,
		DayCount: dayCount(start, now),
		Kind:     kind,
		Label:    labelForKind(kind),
	}
}

// dayCount spans the inclusive window in calendar days. The extra
// millisecond before dividing keeps a zero-length window at one day.
func dayCount(start, end time.Time) int {
	elapsed := end.Sub(start) + time.Millisecond
	return int(math.Ceil(float64(elapsed) / float64(dayLength)))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func labelForKind(kind domain.PeriodKind) string {
	switch kind {
	case domain.PeriodWeekToDate:
		return "Week-to-date"
	case domain.PeriodMonthToDate:
		return "Month-to-date"
	case domain.PeriodYearToDate:
		return "Year-to-date"
	default:
		return "Today"
	}
}

// formatOrdinalDate renders a date as e.g. "1st Jun 18".
func formatOrdinalDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s", t.Day(), ordinalSuffix(t.Day()), t.Format("Jan 06"))
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
