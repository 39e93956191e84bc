package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stay-tools/pms-atlas/pkg/config"
	reporthandlers "github.com/stay-tools/pms-atlas/pkg/handlers/report"
	"github.com/stay-tools/pms-atlas/pkg/server"
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
		Use:   "web",
		Short: "Start the PMS Atlas report server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
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
	logger.Info().Str("backend", cfg.PMSBackend).Msg("backend engine ready")

	tokens := messaging.NewTokenSource(cfg.MessagingBaseURL, cfg.MessagingClientID, cfg.MessagingClientSecret)
	messenger := messaging.NewClient(cfg.MessagingBaseURL, tokens)

	handler := reporthandlers.NewHandler(
		report.NewOrchestrator(engine),
		period.NewResolver(),
		registry,
		messenger,
	)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:         cfg.AppAddr,
		Dependencies: server.Dependencies{Report: handler},
	})

	return webAPI.Start()
}
