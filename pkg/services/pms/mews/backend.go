package mews

import (
	"context"
	"fmt"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
)

// backend implements the primitive reads over the Mews connector API.
type backend struct {
	client *client
	cfg    *Config
}

// EngineFactory builds a Mews-backed metrics engine from a profile file.
func EngineFactory(_ context.Context, profilePath string) (pms.Engine, error) {
	cfg, err := LoadConfig(profilePath)
	if err != nil {
		return nil, fmt.Errorf("unable to load mews profile: %w", err)
	}
	return pms.NewCalculator(&backend{client: newClient(cfg), cfg: cfg}), nil
}

type space struct {
	ID string `json:"Id"`
}

type spacesResponse struct {
	Spaces []space `json:"Spaces"`
}

type amount struct {
	Net float64 `json:"Net"`
}

type accountingItem struct {
	ServiceID            string  `json:"ServiceId"`
	AccountingCategoryID string  `json:"AccountingCategoryId"`
	Amount               *amount `json:"Amount"`
}

type accountingItemsResponse struct {
	AccountingItems []accountingItem `json:"AccountingItems"`
}

type categoryAvailability struct {
	Availabilities []float64 `json:"Availabilities"`
}

type availabilityResponse struct {
	CategoryAvailabilities []categoryAvailability `json:"CategoryAvailabilities"`
	DatesUTC               []string               `json:"DatesUtc"`
}

func (b *backend) TotalSpaces(ctx context.Context) (int, error) {
	var resp spacesResponse
	if err := b.client.post(ctx, "/spaces/getAll", nil, &resp); err != nil {
		return 0, err
	}
	return len(resp.Spaces), nil
}

func (b *backend) RoomRevenue(ctx context.Context, p domain.Period) (float64, error) {
	items, err := b.accountingItems(ctx, p)
	if err != nil {
		return 0, err
	}

	var revenue float64
	for _, item := range items {
		if item.AccountingCategoryID != b.cfg.AccommodationCategoryID {
			continue
		}
		if item.Amount == nil {
			return 0, pms.DataIncompleteError(
				"mews accounting item is missing its amount",
				"Revenue data for that period is not complete.")
		}
		revenue += item.Amount.Net
	}
	return revenue, nil
}

// OccupiedUnitDays converts the connector's available-unit counts into the
// occupied semantic the shared formulas expect.
func (b *backend) OccupiedUnitDays(ctx context.Context, p domain.Period) (float64, error) {
	spaces, err := b.TotalSpaces(ctx)
	if err != nil {
		return 0, err
	}

	var resp availabilityResponse
	body := map[string]any{
		"ServiceId": b.cfg.StayServiceID,
		"StartUtc":  p.Start.Format(time.RFC3339),
		"EndUtc":    periodEndUTC(p).Format(time.RFC3339),
	}
	if err := b.client.post(ctx, "/services/getAvailability", body, &resp); err != nil {
		return 0, err
	}

	var available float64
	for _, ca := range resp.CategoryAvailabilities {
		for _, count := range ca.Availabilities {
			available += count
		}
	}

	return float64(p.DayCount)*float64(spaces) - available, nil
}

func (b *backend) ServiceIDByName(_ context.Context, name string) (string, error) {
	if id, ok := b.cfg.Services[name]; ok {
		return id, nil
	}
	return "", pms.ServiceNotFoundError(name)
}

func (b *backend) ServiceRevenue(ctx context.Context, p domain.Period, serviceID string) (float64, error) {
	items, err := b.accountingItems(ctx, p)
	if err != nil {
		return 0, err
	}

	var revenue float64
	for _, item := range items {
		if item.ServiceID != serviceID {
			continue
		}
		if item.Amount == nil {
			return 0, pms.DataIncompleteError(
				"mews accounting item is missing its amount",
				"Revenue data for that period is not complete.")
		}
		revenue += item.Amount.Net
	}
	return revenue, nil
}

func (b *backend) accountingItems(ctx context.Context, p domain.Period) ([]accountingItem, error) {
	var resp accountingItemsResponse
	body := map[string]any{
		"StartUtc": p.Start.Format(time.RFC3339),
		"EndUtc":   periodEndUTC(p).Format(time.RFC3339),
	}
	if err := b.client.post(ctx, "/accountingItems/getAll", body, &resp); err != nil {
		return nil, err
	}
	return resp.AccountingItems, nil
}

// periodEndUTC translates the inclusive period end into the exclusive
// instant the connector expects. Day-aligned ends cover their whole day.
func periodEndUTC(p domain.Period) time.Time {
	switch p.Kind {
	case domain.PeriodSingleDate, domain.PeriodExplicitRange:
		return p.End.Add(24 * time.Hour)
	default:
		return p.End
	}
}
