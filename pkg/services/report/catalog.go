package report

import (
	"strings"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
)

// BuildRequest maps a metric name and period onto a MetricRequest
// descriptor. Pure construction, no I/O. Unknown metrics return ok=false
// so callers can filter them out of a batch.
func BuildRequest(metric domain.Metric, p domain.Period, serviceName string) (domain.MetricRequest, bool) {
	switch metric {
	case domain.MetricOccupancyRate:
		return domain.MetricRequest{
			Metric:      metric,
			Period:      p,
			DisplayName: domain.StaticLabel("Occupancy Rate"),
			Unit:        "%",
		}, true
	case domain.MetricAverageDailyRate:
		return domain.MetricRequest{
			Metric:      metric,
			Period:      p,
			DisplayName: domain.StaticLabel("Average Daily Rate"),
			Unit:        " GBP",
		}, true
	case domain.MetricRevenuePAR:
		return domain.MetricRequest{
			Metric:      metric,
			Period:      p,
			DisplayName: domain.StaticLabel("Revenue Par"),
			Unit:        " GBP",
		}, true
	case domain.MetricServiceRevenue:
		return domain.MetricRequest{
			Metric:      metric,
			Period:      p,
			ServiceName: serviceName,
			DisplayName: domain.ServiceLabel(func(name string) string {
				return upperFirst(name) + " Service Revenue"
			}),
			Unit: " GBP",
		}, true
	default:
		return domain.MetricRequest{}, false
	}
}

// ExpandBatch builds the cross-product of metrics and periods, keeping
// input order: all metrics for the first period, then the next period.
func ExpandBatch(metrics []domain.Metric, periods []domain.Period, serviceName string) []domain.MetricRequest {
	requests := make([]domain.MetricRequest, 0, len(metrics)*len(periods))
	for _, p := range periods {
		for _, m := range metrics {
			if req, ok := BuildRequest(m, p, serviceName); ok {
				requests = append(requests, req)
			}
		}
	}
	return requests
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
