package pms

import (
	"context"
	"fmt"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"golang.org/x/sync/errgroup"
)

// Calculator derives the report metrics from a Backend's primitives. The
// formulas live here once; backends only supply raw reads. Primitive reads
// inside one metric are independent, so they are issued concurrently and
// joined before combining.
type Calculator struct {
	backend Backend
	now     func() time.Time
}

func NewCalculator(backend Backend) *Calculator {
	return &Calculator{backend: backend, now: time.Now}
}

// OccupancyRate = occupied unit-days * 100 / (day count * total spaces).
func (c *Calculator) OccupancyRate(ctx context.Context, p domain.Period) (float64, error) {
	if err := ValidatePeriod(c.now(), p); err != nil {
		return 0, err
	}

	var (
		spaces   int
		occupied float64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spaces, err = c.backend.TotalSpaces(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		occupied, err = c.backend.OccupiedUnitDays(ctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if spaces <= 0 {
		return 0, DataIncompleteError(
			"backend reported zero bookable units",
			"Room inventory data is not complete.")
	}

	return occupied * 100 / (float64(p.DayCount) * float64(spaces)), nil
}

// AverageDailyRate = room revenue / (total spaces * day count).
func (c *Calculator) AverageDailyRate(ctx context.Context, p domain.Period) (float64, error) {
	if err := ValidatePeriod(c.now(), p); err != nil {
		return 0, err
	}

	var (
		revenue float64
		spaces  int
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = c.backend.RoomRevenue(ctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		spaces, err = c.backend.TotalSpaces(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if spaces <= 0 {
		return 0, DataIncompleteError(
			"backend reported zero bookable units",
			"Room inventory data is not complete.")
	}

	return revenue / (float64(spaces) * float64(p.DayCount)), nil
}

// RevenuePAR = room revenue / occupied unit-days, with no intermediate
// rounding.
func (c *Calculator) RevenuePAR(ctx context.Context, p domain.Period) (float64, error) {
	if err := ValidatePeriod(c.now(), p); err != nil {
		return 0, err
	}

	var (
		revenue  float64
		occupied float64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = c.backend.RoomRevenue(ctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		occupied, err = c.backend.OccupiedUnitDays(ctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if occupied <= 0 {
		return 0, DataNotAvailableError(
			fmt.Sprintf("no occupied unit-days recorded between %s and %s",
				p.Start.Format("2006-01-02"), p.End.Format("2006-01-02")),
			"No occupancy recorded for that period yet.")
	}

	return revenue / occupied, nil
}

// ServiceRevenue delegates to the backend primitive once the service name
// resolves to an identifier.
func (c *Calculator) ServiceRevenue(ctx context.Context, p domain.Period, serviceName string) (float64, error) {
	if err := ValidatePeriod(c.now(), p); err != nil {
		return 0, err
	}

	serviceID, err := c.backend.ServiceIDByName(ctx, serviceName)
	if err != nil {
		return 0, err
	}

	return c.backend.ServiceRevenue(ctx, p, serviceID)
}
