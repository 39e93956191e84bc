package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
	"golang.org/x/sync/errgroup"
)

// Orchestrator executes report batches against one bound engine. Requests
// run concurrently and independently: a failing request becomes an error
// line, never an aborted batch, and results keep the input order.
type Orchestrator struct {
	engine pms.Engine
}

func NewOrchestrator(engine pms.Engine) *Orchestrator {
	return &Orchestrator{engine: engine}
}

func (o *Orchestrator) Run(ctx context.Context, requests []domain.MetricRequest) []domain.ReportResult {
	results := make([]domain.ReportResult, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		g.Go(func() error {
			results[i] = o.execute(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (o *Orchestrator) execute(ctx context.Context, req domain.MetricRequest) domain.ReportResult {
	value, err := o.dispatch(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("metric", string(req.Metric)).
			Str("period", req.Period.Label).
			Msg("report request failed")

		return domain.ReportResult{
			Request:    req,
			ErrMessage: pms.PrettyMessage(err),
			IsError:    true,
		}
	}

	return domain.ReportResult{Request: req, Value: value}
}

func (o *Orchestrator) dispatch(ctx context.Context, req domain.MetricRequest) (float64, error) {
	switch req.Metric {
	case domain.MetricOccupancyRate:
		return o.engine.OccupancyRate(ctx, req.Period)
	case domain.MetricAverageDailyRate:
		return o.engine.AverageDailyRate(ctx, req.Period)
	case domain.MetricRevenuePAR:
		return o.engine.RevenuePAR(ctx, req.Period)
	case domain.MetricServiceRevenue:
		if req.ServiceName == "" {
			return 0, pms.ServiceNotFoundError("(none)")
		}
		return o.engine.ServiceRevenue(ctx, req.Period, req.ServiceName)
	default:
		return 0, fmt.Errorf("unknown metric %q", req.Metric)
	}
}
