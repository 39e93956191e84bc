package mews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
)

const (
	stayServiceID   = "bd26d8db-86da-4f96-9efc-e5a4654a4a94"
	spaServiceID    = "fd34999a-1b21-4790-ad48-72d6ca5dd194"
	accommodationID = "0cf7aa90-736f-43e9-a7dc-787704548d86"
)

func testBackend(t *testing.T, routes map[string]string) *backend {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &Config{
		BaseURL:                 srv.URL,
		ClientToken:             "client-token",
		AccessToken:             "access-token",
		StayServiceID:           stayServiceID,
		AccommodationCategoryID: accommodationID,
		Services:                map[string]string{"spa": spaServiceID},
	}
	b := &backend{client: newClient(cfg), cfg: cfg}
	b.client.httpClient = srv.Client()
	return b
}

func rangePeriod(days int) domain.Period {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	return domain.Period{
		Start:    start,
		End:      start.AddDate(0, 0, days-1),
		DayCount: days,
		Kind:     domain.PeriodExplicitRange,
	}
}

func TestTotalSpaces(t *testing.T) {
	b := testBackend(t, map[string]string{
		"/spaces/getAll": `{"Spaces": [{"Id": "a"}, {"Id": "b"}, {"Id": "c"}]}`,
	})

	spaces, err := b.TotalSpaces(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, spaces)
}

func TestRoomRevenue_FiltersAccommodationCategory(t *testing.T) {
	b := testBackend(t, map[string]string{
		"/accountingItems/getAll": `{"AccountingItems": [
			{"AccountingCategoryId": "` + accommodationID + `", "Amount": {"Net": 120.5}},
			{"AccountingCategoryId": "` + accommodationID + `", "Amount": {"Net": 80}},
			{"AccountingCategoryId": "some-other-category", "Amount": {"Net": 999}}
		]}`,
	})

	revenue, err := b.RoomRevenue(context.Background(), rangePeriod(2))

	require.NoError(t, err)
	assert.InDelta(t, 200.5, revenue, 1e-9)
}

func TestRoomRevenue_MissingAmount_FailsIncomplete(t *testing.T) {
	b := testBackend(t, map[string]string{
		"/accountingItems/getAll": `{"AccountingItems": [
			{"AccountingCategoryId": "` + accommodationID + `"}
		]}`,
	})

	_, err := b.RoomRevenue(context.Background(), rangePeriod(2))

	assert.ErrorIs(t, err, pms.ErrDataIncomplete)
}

func TestOccupiedUnitDays_ConvertsAvailableCounts(t *testing.T) {
	b := testBackend(t, map[string]string{
		"/spaces/getAll": `{"Spaces": [{"Id": "a"}, {"Id": "b"}, {"Id": "c"}]}`,
		"/services/getAvailability": `{
			"DatesUtc": ["2024-06-01T00:00:00Z", "2024-06-02T00:00:00Z"],
			"CategoryAvailabilities": [
				{"Availabilities": [1, 2]},
				{"Availabilities": [0, 1]}
			]
		}`,
	})

	occupied, err := b.OccupiedUnitDays(context.Background(), rangePeriod(2))

	require.NoError(t, err)
	// 2 days * 3 spaces - 4 available unit-days.
	assert.InDelta(t, 2, occupied, 1e-9)
}

func TestServiceIDByName(t *testing.T) {
	b := testBackend(t, nil)

	id, err := b.ServiceIDByName(context.Background(), "spa")
	require.NoError(t, err)
	assert.Equal(t, spaServiceID, id)

	_, err = b.ServiceIDByName(context.Background(), "casino")
	assert.ErrorIs(t, err, pms.ErrServiceNotFound)
}

func TestServiceRevenue_FiltersByServiceID(t *testing.T) {
	b := testBackend(t, map[string]string{
		"/accountingItems/getAll": `{"AccountingItems": [
			{"ServiceId": "` + spaServiceID + `", "Amount": {"Net": 45}},
			{"ServiceId": "` + spaServiceID + `", "Amount": {"Net": 30}},
			{"ServiceId": "` + stayServiceID + `", "Amount": {"Net": 500}}
		]}`,
	})

	revenue, err := b.ServiceRevenue(context.Background(), rangePeriod(2), spaServiceID)

	require.NoError(t, err)
	assert.InDelta(t, 75, revenue, 1e-9)
}

func TestRequest_NotFound_FailsNotAvailable(t *testing.T) {
	b := testBackend(t, nil) // no routes: every path is a 404

	_, err := b.TotalSpaces(context.Background())

	assert.ErrorIs(t, err, pms.ErrDataNotAvailable)
}
