package main

import (
	"fmt"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stay-tools/pms-atlas/pkg/config"
	"github.com/stay-tools/pms-atlas/pkg/jobs"
	"github.com/stay-tools/pms-atlas/pkg/services/messaging"
	"github.com/stay-tools/pms-atlas/pkg/services/period"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
	"github.com/stay-tools/pms-atlas/pkg/services/pms/comanche"
	"github.com/stay-tools/pms-atlas/pkg/services/pms/impala"
	"github.com/stay-tools/pms-atlas/pkg/services/pms/mews"
	"github.com/stay-tools/pms-atlas/pkg/services/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the scheduled report worker",
		RunE:  runWorker,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runWorker(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry := pms.NewRegistry(map[string]pms.EngineFactory{
		"mews":     mews.EngineFactory,
		"impala":   impala.EngineFactory,
		"comanche": comanche.EngineFactory,
	})

	engine, err := registry.Create(ctx, cfg.PMSBackend, cfg.PMSProfilePath)
	if err != nil {
		return err
	}

	tokens := messaging.NewTokenSource(cfg.MessagingBaseURL, cfg.MessagingClientID, cfg.MessagingClientSecret)
	messenger := messaging.NewClient(cfg.MessagingBaseURL, tokens)

	summary := jobs.NewSummaryReport(
		report.NewOrchestrator(engine),
		period.NewResolver(),
		messenger,
	)

	task, err := jobs.NewSummaryReportTask(jobs.SummaryReportPayload{
		ServiceName: cfg.SummaryServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to build summary task: %w", err)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Summary:   summary,
		Cron: []jobs.CronRegistration{
			{Spec: cfg.SummaryCron, Task: task},
		},
	})
	if err != nil {
		return err
	}

	return worker.Run()
}
