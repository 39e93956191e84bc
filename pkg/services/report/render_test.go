package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
)

func TestRender_TwoDecimalPlacesWithUnit(t *testing.T) {
	req, ok := BuildRequest(domain.MetricOccupancyRate, testPeriod("Today"), "")
	require.True(t, ok)

	tests := []struct {
		value float64
		want  string
	}{
		{63.333333, "Today Occupancy Rate: 63.33%"},
		{10, "Today Occupancy Rate: 10.00%"},
		{99.999, "Today Occupancy Rate: 100.00%"},
		{0.005, "Today Occupancy Rate: 0.01%"},
	}

	for _, tt := range tests {
		line := Render(domain.ReportResult{Request: req, Value: tt.value})
		assert.Equal(t, tt.want, line)
	}
}

func TestRender_ErrorLine_HasNoUnitSuffix(t *testing.T) {
	req, ok := BuildRequest(domain.MetricRevenuePAR, testPeriod("Month-to-date"), "")
	require.True(t, ok)

	line := Render(domain.ReportResult{
		Request:    req,
		ErrMessage: "The data may not be ready yet.",
		IsError:    true,
	})

	assert.Equal(t, "Month-to-date Revenue Par: The data may not be ready yet.", line)
	assert.NotContains(t, line, "GBP")
}

func TestRender_ServiceRevenueLabel(t *testing.T) {
	req, ok := BuildRequest(domain.MetricServiceRevenue, testPeriod("Today"), "spa")
	require.True(t, ok)

	line := Render(domain.ReportResult{Request: req, Value: 1234.5})

	assert.Equal(t, "Today Spa Service Revenue: 1234.50 GBP", line)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a\nb", Join([]string{"a", "b"}))
}

func TestRenderFatal(t *testing.T) {
	line := RenderFatal(errors.New("no backend selected"))

	assert.Equal(t, "An error has occurred: no backend selected", line)
}
