package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
)

// Render formats a single result as a report line. Numeric values are
// fixed to two decimal places with the unit appended; error lines carry
// the pretty message and no unit.
func Render(res domain.ReportResult) string {
	name := res.Request.DisplayName.Resolve(res.Request.ServiceName)

	if res.IsError {
		return fmt.Sprintf("%s %s: %s", res.Request.Period.Label, name, res.ErrMessage)
	}

	value := strconv.FormatFloat(res.Value, 'f', 2, 64)
	return fmt.Sprintf("%s %s: %s%s", res.Request.Period.Label, name, value, res.Request.Unit)
}

// RenderAll renders every result in order.
func RenderAll(results []domain.ReportResult) []string {
	lines := make([]string, len(results))
	for i, res := range results {
		lines[i] = Render(res)
	}
	return lines
}

// Join builds the final message body from rendered lines.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// RenderFatal is the single line shown when a batch fails before any
// request could run.
func RenderFatal(err error) string {
	return fmt.Sprintf("An error has occurred: %s", err)
}
