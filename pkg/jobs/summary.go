package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/messaging"
	"github.com/stay-tools/pms-atlas/pkg/services/period"
	"github.com/stay-tools/pms-atlas/pkg/services/report"
)

var summaryMetrics = []domain.Metric{
	domain.MetricOccupancyRate,
	domain.MetricAverageDailyRate,
	domain.MetricRevenuePAR,
	domain.MetricServiceRevenue,
}

// SummaryReport runs the scheduled daily report: yesterday, month-to-date
// and year-to-date, each crossed with every metric, delivered through the
// messaging channel as one joined message.
type SummaryReport struct {
	orchestrator *report.Orchestrator
	resolver     *period.Resolver
	notifier     messaging.Notifier
	now          func() time.Time
}

func NewSummaryReport(orch *report.Orchestrator, resolver *period.Resolver, notifier messaging.Notifier) *SummaryReport {
	return &SummaryReport{
		orchestrator: orch,
		resolver:     resolver,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Handle processes TaskTypeSummaryReport tasks.
func (s *SummaryReport) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SummaryReportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	return s.Run(ctx, payload.ServiceName)
}

func (s *SummaryReport) Run(ctx context.Context, serviceName string) error {
	logger := zerolog.Ctx(ctx)
	started := s.now()

	message, err := s.buildMessage(ctx, serviceName)
	if err != nil {
		message = report.RenderFatal(err)
		logger.Error().Err(err).Msg("summary report failed before execution")
	}

	resp, err := s.notifier.NotifyText(ctx, "Daily PMS Report\n\n"+message)
	if err != nil {
		return fmt.Errorf("failed to deliver summary report: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("messaging channel rejected summary report: %d %s", resp.StatusCode, resp.Body)
	}

	logger.Info().
		Dur("elapsed", s.now().Sub(started)).
		Msg("summary report delivered")
	return nil
}

func (s *SummaryReport) buildMessage(ctx context.Context, serviceName string) (string, error) {
	yesterday := s.resolver.ResolveDate(s.now().UTC().AddDate(0, 0, -1))

	mtd, err := s.resolver.Resolve("month to date")
	if err != nil {
		return "", err
	}
	ytd, err := s.resolver.Resolve("year to date")
	if err != nil {
		return "", err
	}

	requests := report.ExpandBatch(summaryMetrics, []domain.Period{yesterday, mtd, ytd}, serviceName)
	results := s.orchestrator.Run(ctx, requests)
	return report.Join(report.RenderAll(results)), nil
}
