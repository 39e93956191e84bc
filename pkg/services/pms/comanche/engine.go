package comanche

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
)

// engine reads pre-aggregated figures from the Comanche daily-data
// dashboard. The dashboard only knows three coarse buckets (Today, MTD,
// YTD), so it implements pms.Engine directly instead of going through the
// shared calculator: the derived values already exist server-side.
type engine struct {
	httpClient *http.Client
	cfg        *Config
	now        func() time.Time
}

// EngineFactory builds a Comanche-backed metrics engine from a profile file.
func EngineFactory(_ context.Context, profilePath string) (pms.Engine, error) {
	cfg, err := LoadConfig(profilePath)
	if err != nil {
		return nil, fmt.Errorf("unable to load comanche profile: %w", err)
	}
	return &engine{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		now:        time.Now,
	}, nil
}

type dailyData struct {
	SMDashboard map[string]json.RawMessage `json:"sm_dashboard"`
}

// OccupancyRate reads the bucket's occupied unit-day count and scales it
// against the configured room inventory.
func (e *engine) OccupancyRate(ctx context.Context, p domain.Period) (float64, error) {
	if err := pms.ValidatePeriod(e.now(), p); err != nil {
		return 0, err
	}

	bucket, err := dashboardBucket(p)
	if err != nil {
		return 0, err
	}

	occupied, err := e.dashboardValue(ctx, p, bucket+"Occ")
	if err != nil {
		return 0, err
	}

	return occupied * 100 / (float64(p.DayCount) * float64(e.cfg.RoomCount)), nil
}

func (e *engine) AverageDailyRate(ctx context.Context, p domain.Period) (float64, error) {
	if err := pms.ValidatePeriod(e.now(), p); err != nil {
		return 0, err
	}

	bucket, err := dashboardBucket(p)
	if err != nil {
		return 0, err
	}

	return e.dashboardValue(ctx, p, bucket+"ADR")
}

func (e *engine) RevenuePAR(ctx context.Context, p domain.Period) (float64, error) {
	if err := pms.ValidatePeriod(e.now(), p); err != nil {
		return 0, err
	}

	bucket, err := dashboardBucket(p)
	if err != nil {
		return 0, err
	}

	return e.dashboardValue(ctx, p, bucket+"RevPar")
}

// ServiceRevenue has no dashboard counterpart.
func (e *engine) ServiceRevenue(_ context.Context, _ domain.Period, _ string) (float64, error) {
	return 0, pms.UnsupportedOperationError("service revenue")
}

// dashboardBucket maps a period onto the dashboard's Today/MTD/YTD keys.
// Explicit ranges must align with a calendar month start; anything else
// cannot be represented.
func dashboardBucket(p domain.Period) (string, error) {
	const pretty = "Comanche data only supports TTD, MTD, and YTD."

	switch p.Kind {
	case domain.PeriodToday, domain.PeriodSingleDate:
		return "Today", nil
	case domain.PeriodMonthToDate:
		return "MTD", nil
	case domain.PeriodYearToDate:
		return "YTD", nil
	case domain.PeriodExplicitRange:
		if p.Start.Day() != 1 {
			return "", pms.UnsupportedPeriodError("explicit range does not start on the 1st", pretty)
		}
		switch {
		case p.DayCount == 1:
			return "Today", nil
		case p.DayCount <= 31:
			return "MTD", nil
		case p.Start.Month() == time.January:
			return "YTD", nil
		default:
			return "", pms.UnsupportedPeriodError("explicit range exceeds a month without starting in January", pretty)
		}
	default:
		return "", pms.UnsupportedPeriodError(fmt.Sprintf("period kind %q has no dashboard bucket", p.Kind), pretty)
	}
}

func (e *engine) dashboardValue(ctx context.Context, p domain.Period, key string) (float64, error) {
	date := p.End.Format("2006-01-02")

	data, err := e.fetchDailyData(ctx, date)
	if err != nil {
		return 0, err
	}

	raw, ok := data.SMDashboard[key]
	if !ok {
		return 0, pms.DataIncompleteError(
			fmt.Sprintf("key sm_dashboard.%s of %s is not found", key, date),
			fmt.Sprintf("%s's data may not be complete.", date))
	}

	value, err := coerceNumber(raw)
	if err != nil {
		return 0, pms.DataIncompleteError(
			fmt.Sprintf("key sm_dashboard.%s of %s is not numeric", key, date),
			fmt.Sprintf("%s's data may not be complete.", date))
	}
	return value, nil
}

func (e *engine) fetchDailyData(ctx context.Context, date string) (*dailyData, error) {
	endpoint := fmt.Sprintf("%s/api/v1/daily-data/%s", e.cfg.DataEndpointURL, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build comanche request: %w", err)
	}
	req.SetBasicAuth(e.cfg.ClientID, e.cfg.ClientReadSecret)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("comanche request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pms.DataNotAvailableError(
			fmt.Sprintf("comanche has no daily data for %s", date),
			fmt.Sprintf("%s's data may not be ready yet.", date))
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("comanche request returned %d: %s", resp.StatusCode, raw)
	}

	var data dailyData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, pms.DataIncompleteError(
			fmt.Sprintf("failed to decode comanche daily data for %s: %v", date, err),
			fmt.Sprintf("%s's data may not be complete.", date))
	}
	return &data, nil
}

// coerceNumber accepts both the number and quoted-number shapes the
// dashboard emits.
func coerceNumber(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}
