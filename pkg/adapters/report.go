package adapters

import (
	"github.com/stay-tools/pms-atlas/pkg/models/api"
	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/report"
)

// MapResultToAPI renders a domain result into its API line shape.
func MapResultToAPI(res domain.ReportResult) api.ReportLine {
	return api.ReportLine{
		Line:    report.Render(res),
		IsError: res.IsError,
	}
}

// MapResultsToAPI renders a batch, keeping order.
func MapResultsToAPI(results []domain.ReportResult) []api.ReportLine {
	lines := make([]api.ReportLine, len(results))
	for i, res := range results {
		lines[i] = MapResultToAPI(res)
	}
	return lines
}
