package impala

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

func testBackendWith(t *testing.T, routes map[string]string) *backend {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &Config{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		HotelID:  "hotel-1",
		Services: map[string]string{"spa": "SPA"},
	}
	b := &backend{client: newClient(cfg), cfg: cfg}
	b.client.httpClient = srv.Client()
	return b
}

func periodOf(start time.Time, days int) domain.Period {
	return domain.Period{
		Start:    start,
		End:      start.AddDate(0, 0, days-1),
		DayCount: days,
		Kind:     domain.PeriodExplicitRange,
	}
}

func TestTotalSpaces(t *testing.T) {
	b := testBackendWith(t, map[string]string{
		"/hotel/hotel-1/rooms": `{"records": [{"roomId": "1"}, {"roomId": "2"}]}`,
	})

	spaces, err := b.TotalSpaces(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, spaces)
}

func TestRoomRevenue_SumsBookingCosts(t *testing.T) {
	b := testBackendWith(t, map[string]string{
		"/hotel/hotel-1/bookings": `{"records": [
			{"checkIn": "2024-06-01", "checkOut": "2024-06-03", "totalCost": {"amount": 300}},
			{"checkIn": "2024-06-02", "checkOut": "2024-06-04", "totalCost": {"amount": 150.5}}
		]}`,
	})

	revenue, err := b.RoomRevenue(context.Background(), periodOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3))

	require.NoError(t, err)
	assert.InDelta(t, 450.5, revenue, 1e-9)
}

func TestRoomRevenue_MissingCost_FailsIncomplete(t *testing.T) {
	b := testBackendWith(t, map[string]string{
		"/hotel/hotel-1/bookings": `{"records": [{"checkIn": "2024-06-01", "checkOut": "2024-06-03"}]}`,
	})

	_, err := b.RoomRevenue(context.Background(), periodOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3))

	assert.ErrorIs(t, err, pms.ErrDataIncomplete)
}

func TestOccupiedUnitDays_ClipsStraddlingStays(t *testing.T) {
	// Period: 2024-06-01 .. 2024-06-03 (3 days).
	// Booking 1 straddles the start: nights 05-30 .. 06-01, only 06-01 counts.
	// Booking 2 straddles the end with two rooms: nights 06-02 .. 06-09,
	// only 06-02 and 06-03 count, twice each.
	b := testBackendWith(t, map[string]string{
		"/hotel/hotel-1/bookings": `{"records": [
			{"checkIn": "2024-05-30", "checkOut": "2024-06-02", "totalCost": {"amount": 1}},
			{"checkIn": "2024-06-02", "checkOut": "2024-06-10", "roomCount": 2, "totalCost": {"amount": 1}}
		]}`,
	})

	occupied, err := b.OccupiedUnitDays(context.Background(), periodOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3))

	require.NoError(t, err)
	assert.InDelta(t, 5, occupied, 1e-9)
}

func TestOccupiedUnitDays_OutOfPeriodBooking_CountsNothing(t *testing.T) {
	b := testBackendWith(t, map[string]string{
		"/hotel/hotel-1/bookings": `{"records": [
			{"checkIn": "2024-03-01", "checkOut": "2024-03-05", "totalCost": {"amount": 1}}
		]}`,
	})

	occupied, err := b.OccupiedUnitDays(context.Background(), periodOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3))

	require.NoError(t, err)
	assert.Zero(t, occupied)
}

func TestServiceRevenue_FiltersChargeType(t *testing.T) {
	b := testBackendWith(t, map[string]string{
		"/hotel/hotel-1/charges": `{"records": [
			{"chargeType": "SPA", "total": {"amount": 60}},
			{"chargeType": "SPA", "total": {"amount": 40}},
			{"chargeType": "MINIBAR", "total": {"amount": 15}}
		]}`,
	})

	revenue, err := b.ServiceRevenue(context.Background(), periodOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3), "SPA")

	require.NoError(t, err)
	assert.InDelta(t, 100, revenue, 1e-9)
}

func TestServiceIDByName_Unknown_Fails(t *testing.T) {
	b := testBackendWith(t, nil)

	_, err := b.ServiceIDByName(context.Background(), "casino")

	assert.ErrorIs(t, err, pms.ErrServiceNotFound)
}

func TestRequest_NotFound_FailsNotAvailable(t *testing.T) {
	b := testBackendWith(t, nil)

	_, err := b.TotalSpaces(context.Background())

	assert.ErrorIs(t, err, pms.ErrDataNotAvailable)
}
