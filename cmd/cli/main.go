package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	reporthandlers "github.com/stay-tools/pms-atlas/pkg/handlers/report"
	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/period"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
	"github.com/stay-tools/pms-atlas/pkg/services/pms/comanche"
	"github.com/stay-tools/pms-atlas/pkg/services/pms/impala"
	"github.com/stay-tools/pms-atlas/pkg/services/pms/mews"
	"github.com/stay-tools/pms-atlas/pkg/services/report"
)

type reportCmd struct {
	backend     string
	profilePath string
	metrics     []string
	periods     []string
	serviceName string
}

func main() {
	rc := &reportCmd{}
	cmd := &cobra.Command{
		Use:   "pms-atlas",
		Short: "Compute hospitality performance metrics from a PMS backend",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.backend, "backend", "", "Backend to query (mews | impala | comanche)")
	cmd.Flags().StringVar(&rc.profilePath, "profile", "pms-profile.yaml", "Path to the backend profile file")
	cmd.Flags().StringSliceVar(&rc.metrics, "metric", []string{"occupancy-rate"}, "Metrics to compute")
	cmd.Flags().StringSliceVar(&rc.periods, "period", []string{"today"}, "Periods to report on")
	cmd.Flags().StringVar(&rc.serviceName, "service", "", "Ancillary service name for service-revenue")

	_ = cmd.MarkFlagRequired("backend")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	ctx := cmd.Context()

	registry := pms.NewRegistry(map[string]pms.EngineFactory{
		"mews":     mews.EngineFactory,
		"impala":   impala.EngineFactory,
		"comanche": comanche.EngineFactory,
	})

	engine, err := registry.Create(ctx, rc.backend, rc.profilePath)
	if err != nil {
		return err
	}

	metrics := make([]domain.Metric, 0, len(rc.metrics))
	for _, name := range rc.metrics {
		metric, ok := reporthandlers.ParseMetric(name)
		if !ok {
			return fmt.Errorf("unknown metric %q", name)
		}
		metrics = append(metrics, metric)
	}

	resolver := period.NewResolver()
	periods := make([]domain.Period, 0, len(rc.periods))
	for _, expr := range rc.periods {
		p, err := resolver.Resolve(expr)
		if err != nil {
			return err
		}
		periods = append(periods, p)
	}

	requests := report.ExpandBatch(metrics, periods, rc.serviceName)
	results := report.NewOrchestrator(engine).Run(ctx, requests)

	for _, line := range report.RenderAll(results) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
