package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/messaging"
	"github.com/stay-tools/pms-atlas/pkg/services/period"
	"github.com/stay-tools/pms-atlas/pkg/services/report"
)

type stubEngine struct {
	serviceErr error
}

func (s *stubEngine) OccupancyRate(context.Context, domain.Period) (float64, error) {
	return 63.333333, nil
}

func (s *stubEngine) AverageDailyRate(context.Context, domain.Period) (float64, error) {
	return 118.4, nil
}

func (s *stubEngine) RevenuePAR(context.Context, domain.Period) (float64, error) {
	return 187.2, nil
}

func (s *stubEngine) ServiceRevenue(context.Context, domain.Period, string) (float64, error) {
	if s.serviceErr != nil {
		return 0, s.serviceErr
	}
	return 950, nil
}

type stubNotifier struct {
	sent []string
	resp messaging.Response
	err  error
}

func (s *stubNotifier) NotifyText(_ context.Context, text string) (messaging.Response, error) {
	s.sent = append(s.sent, text)
	if s.err != nil {
		return messaging.Response{}, s.err
	}
	return s.resp, nil
}

func (s *stubNotifier) MessageText(_ context.Context, text, _ string) (messaging.Response, error) {
	return s.NotifyText(context.Background(), text)
}

func newSummary(notifier *stubNotifier) *SummaryReport {
	s := NewSummaryReport(
		report.NewOrchestrator(&stubEngine{}),
		period.NewResolver(),
		notifier,
	)
	s.now = func() time.Time {
		return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSummaryReport_SendsTwelveLines(t *testing.T) {
	notifier := &stubNotifier{resp: messaging.Response{StatusCode: 200, OK: true}}
	s := newSummary(notifier)

	err := s.Run(context.Background(), "spa")

	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)

	message := notifier.sent[0]
	assert.True(t, strings.HasPrefix(message, "Daily PMS Report\n\n"))

	// 3 periods (yesterday, MTD, YTD) x 4 metrics.
	body := strings.TrimPrefix(message, "Daily PMS Report\n\n")
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 12)

	assert.Contains(t, lines[0], "Occupancy Rate: 63.33%")
	assert.Contains(t, lines[3], "Spa Service Revenue: 950.00 GBP")
	assert.Contains(t, lines[4], "Month-to-date")
	assert.Contains(t, lines[8], "Year-to-date")
}

func TestSummaryReport_DeliveryFailure_IsAnError(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("connection refused")}
	s := newSummary(notifier)

	err := s.Run(context.Background(), "spa")

	assert.Error(t, err)
}

func TestSummaryReport_ChannelRejection_IsAnError(t *testing.T) {
	notifier := &stubNotifier{resp: messaging.Response{StatusCode: 502, OK: false}}
	s := newSummary(notifier)

	err := s.Run(context.Background(), "spa")

	assert.Error(t, err)
}

func TestNewSummaryReportTask_RoundTripsPayload(t *testing.T) {
	task, err := NewSummaryReportTask(SummaryReportPayload{ServiceName: "spa"})

	require.NoError(t, err)
	assert.Equal(t, TaskTypeSummaryReport, task.Type())
	assert.Contains(t, string(task.Payload()), "spa")
}
