package impala

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
)

// bookingWindowBuffer widens the booking query on both sides of the
// period so stays straddling a boundary are still fetched. Their nights
// are clipped to the period before counting rather than dropped.
const bookingWindowBuffer = 45 * 24 * time.Hour

// backend implements the primitive reads over the Impala hotel API.
// Occupancy is re-derived from raw booking date ranges: the API has no
// occupied-count endpoint, only the bookings themselves.
type backend struct {
	client *client
	cfg    *Config
}

// EngineFactory builds an Impala-backed metrics engine from a profile file.
func EngineFactory(_ context.Context, profilePath string) (pms.Engine, error) {
	cfg, err := LoadConfig(profilePath)
	if err != nil {
		return nil, fmt.Errorf("unable to load impala profile: %w", err)
	}
	return pms.NewCalculator(&backend{client: newClient(cfg), cfg: cfg}), nil
}

type room struct {
	ID string `json:"roomId"`
}

type cost struct {
	Amount float64 `json:"amount"`
}

type booking struct {
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	RoomCount int    `json:"roomCount"`
	TotalCost *cost  `json:"totalCost"`
}

type charge struct {
	ChargeType string `json:"chargeType"`
	Amount     *cost  `json:"total"`
}

type recordsEnvelope[T any] struct {
	Records []T `json:"records"`
}

func (b *backend) TotalSpaces(ctx context.Context) (int, error) {
	var resp recordsEnvelope[room]
	if err := b.client.get(ctx, "/rooms", nil, &resp); err != nil {
		return 0, err
	}
	return len(resp.Records), nil
}

func (b *backend) RoomRevenue(ctx context.Context, p domain.Period) (float64, error) {
	bookings, err := b.bookings(ctx, p.Start, p.End)
	if err != nil {
		return 0, err
	}

	var revenue float64
	for _, bk := range bookings {
		if bk.TotalCost == nil {
			return 0, pms.DataIncompleteError(
				"impala booking is missing its total cost",
				"Revenue data for that period is not complete.")
		}
		revenue += bk.TotalCost.Amount
	}
	return revenue, nil
}

// OccupiedUnitDays builds a per-day occupied-room table from booking stay
// ranges. Bookings are fetched with a lead/lag buffer and then clipped to
// the period, so a stay that only partially overlaps still contributes its
// in-period nights.
func (b *backend) OccupiedUnitDays(ctx context.Context, p domain.Period) (float64, error) {
	bookings, err := b.bookings(ctx, p.Start.Add(-bookingWindowBuffer), p.End.Add(bookingWindowBuffer))
	if err != nil {
		return 0, err
	}

	periodStart := p.Start
	periodEnd := p.Start.AddDate(0, 0, p.DayCount) // exclusive

	occupiedByDay := make(map[time.Time]int, p.DayCount)
	for _, bk := range bookings {
		checkIn, err := parseDay(bk.CheckIn)
		if err != nil {
			return 0, pms.DataIncompleteError(
				fmt.Sprintf("impala booking has unparseable check-in %q", bk.CheckIn),
				"Booking data for that period is not complete.")
		}
		checkOut, err := parseDay(bk.CheckOut)
		if err != nil {
			return 0, pms.DataIncompleteError(
				fmt.Sprintf("impala booking has unparseable check-out %q", bk.CheckOut),
				"Booking data for that period is not complete.")
		}

		rooms := bk.RoomCount
		if rooms == 0 {
			rooms = 1
		}

		// Clip the stay to the period bounds; check-out day is not an
		// occupied night.
		from := maxTime(checkIn, periodStart)
		to := minTime(checkOut, periodEnd)
		for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
			occupiedByDay[day] += rooms
		}
	}

	var occupied float64
	for _, count := range occupiedByDay {
		occupied += float64(count)
	}
	return occupied, nil
}

func (b *backend) ServiceIDByName(_ context.Context, name string) (string, error) {
	if id, ok := b.cfg.Services[name]; ok {
		return id, nil
	}
	return "", pms.ServiceNotFoundError(name)
}

func (b *backend) ServiceRevenue(ctx context.Context, p domain.Period, serviceID string) (float64, error) {
	query := url.Values{}
	query.Set("startDate", p.Start.Format("2006-01-02"))
	query.Set("endDate", p.End.Format("2006-01-02"))

	var resp recordsEnvelope[charge]
	if err := b.client.get(ctx, "/charges", query, &resp); err != nil {
		return 0, err
	}

	var revenue float64
	for _, ch := range resp.Records {
		if ch.ChargeType != serviceID {
			continue
		}
		if ch.Amount == nil {
			return 0, pms.DataIncompleteError(
				"impala charge is missing its total",
				"Revenue data for that period is not complete.")
		}
		revenue += ch.Amount.Amount
	}
	return revenue, nil
}

func (b *backend) bookings(ctx context.Context, start, end time.Time) ([]booking, error) {
	query := url.Values{}
	query.Set("startDate", start.Format("2006-01-02"))
	query.Set("endDate", end.Format("2006-01-02"))

	var resp recordsEnvelope[booking]
	if err := b.client.get(ctx, "/bookings", query, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
