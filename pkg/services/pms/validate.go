package pms

import (
	"fmt"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
)

// ValidatePeriod runs the checks shared by every derived metric: the
// period must be ordered, and must not lie entirely in the future. An end
// in the future is tolerated as long as the period has started.
func ValidatePeriod(now time.Time, p domain.Period) error {
	if p.End.Before(p.Start) {
		return PeriodOrderError(fmt.Sprintf(
			"start date %s exceeds end date %s",
			p.Start.Format("2006-01-02"), p.End.Format("2006-01-02")))
	}
	if p.Start.After(now) {
		return FutureDataError(fmt.Sprintf(
			"period starting %s is in the future", p.Start.Format("2006-01-02")))
	}
	return nil
}
